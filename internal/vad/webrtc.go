//go:build cgo

package vad

import (
	"fmt"

	"github.com/visvasity/webrtcvad"
)

type webrtcClassifier struct {
	vad *webrtcvad.VAD
}

// NewWebRTC creates a classifier backed by the WebRTC VAD.
// Modes run 0 (quality) to 3 (aggressive).
func NewWebRTC(aggressiveness int) (Classifier, error) {
	if aggressiveness < 0 || aggressiveness > 3 {
		return nil, fmt.Errorf("webrtc vad mode must be between 0 and 3, got %d", aggressiveness)
	}
	vad, err := webrtcvad.New()
	if err != nil {
		return nil, err
	}
	if err := vad.SetMode(aggressiveness); err != nil {
		return nil, err
	}
	return &webrtcClassifier{vad: vad}, nil
}

func (c *webrtcClassifier) IsSpeech(frame []byte, sampleRate int) (bool, error) {
	return c.vad.Process(sampleRate, frame)
}
