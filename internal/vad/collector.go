package vad

import (
	"context"
	"fmt"
)

// hysteresisRatio is the fraction of the padding window that must agree
// before the state machine flips. Fixed so a single stray classification
// near a boundary cannot flip state.
const hysteresisRatio = 0.9

// Segment is a contiguous time range classified as containing speech.
type Segment struct {
	Start float64
	End   float64
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Collect consumes the frame sequence once, in order, classifying each frame
// and running a two-state hysteresis machine over a padding window of
// paddingMs. It triggers when more than 90% of the buffered window is
// voiced, de-triggers when more than 90% is unvoiced, and flushes a final
// segment if the stream ends while triggered.
//
// Cancellation is honored between frames: the in-flight accumulator is
// discarded, since an incomplete segment has no defined closing boundary.
func Collect(ctx context.Context, classifier Classifier, frames *Framer, sampleRate, frameMs, paddingMs int) ([]Segment, error) {
	if classifier == nil {
		return nil, fmt.Errorf("nil classifier")
	}
	capacity := paddingMs / frameMs
	if capacity <= 0 {
		return nil, fmt.Errorf("padding window %d ms shorter than one %d ms frame", paddingMs, frameMs)
	}

	buffer := newRing(capacity)
	triggered := false
	var voiced []Frame
	var segments []Segment

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, ok := frames.Next()
		if !ok {
			break
		}
		speech, err := classifier.IsSpeech(frame.Samples, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("classify frame at %.3fs: %w", frame.Timestamp, err)
		}

		if !triggered {
			buffer.push(frame, speech)
			if float64(buffer.voiced) > hysteresisRatio*float64(capacity) {
				triggered = true
				voiced = append(voiced, buffer.frames()...)
				buffer.clear()
			}
			continue
		}

		voiced = append(voiced, frame)
		buffer.push(frame, speech)
		if float64(buffer.unvoiced()) > hysteresisRatio*float64(capacity) {
			segments = append(segments, segmentOf(voiced))
			triggered = false
			buffer.clear()
			voiced = nil
		}
	}

	// Stream ended while triggered: close the open segment.
	if len(voiced) > 0 {
		segments = append(segments, segmentOf(voiced))
	}

	return segments, nil
}

func segmentOf(voiced []Frame) Segment {
	last := voiced[len(voiced)-1]
	return Segment{
		Start: voiced[0].Timestamp,
		End:   last.Timestamp + last.Duration,
	}
}
