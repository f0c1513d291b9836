package vad

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Classifier is the speech/non-speech capability consulted once per frame.
// Implementations must be safe to call sequentially; they are never called
// concurrently by the collector.
type Classifier interface {
	IsSpeech(frame []byte, sampleRate int) (bool, error)
}

// EnergyClassifier is a pure-Go fallback classifier that reports speech when
// the normalized RMS level of a frame exceeds its threshold. It is far
// cruder than the WebRTC backend but needs no cgo.
type EnergyClassifier struct {
	threshold float64
}

// NewEnergy creates an RMS-energy classifier. The threshold is a normalized
// level in [0, 1]; full-scale PCM has level 1.
func NewEnergy(threshold float64) (*EnergyClassifier, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("energy threshold must be between 0 and 1, got %g", threshold)
	}
	return &EnergyClassifier{threshold: threshold}, nil
}

func (c *EnergyClassifier) IsSpeech(frame []byte, sampleRate int) (bool, error) {
	if len(frame) == 0 || len(frame)%bytesPerSample != 0 {
		return false, fmt.Errorf("frame length %d is not a whole number of 16-bit samples", len(frame))
	}
	var energy float64
	for i := 0; i+1 < len(frame); i += bytesPerSample {
		sample := int16(binary.LittleEndian.Uint16(frame[i:]))
		energy += float64(sample) * float64(sample)
	}
	rms := math.Sqrt(energy/float64(len(frame)/bytesPerSample)) / 32768.0
	return rms >= c.threshold, nil
}
