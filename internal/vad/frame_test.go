package vad

import (
	"math"
	"testing"
)

func TestFramerSizeAndCount(t *testing.T) {
	// 16 kHz at 30 ms is 480 samples, 960 bytes per frame.
	pcm := make([]byte, 60*960+500)
	framer := NewFramer(pcm, 16000, 30)
	if framer.FrameSize() != 960 {
		t.Fatalf("expected 960-byte frames, got %d", framer.FrameSize())
	}

	count := 0
	for {
		frame, ok := framer.Next()
		if !ok {
			break
		}
		if len(frame.Samples) != 960 {
			t.Fatalf("frame %d has %d bytes", count, len(frame.Samples))
		}
		count++
	}
	if count != 60 {
		t.Fatalf("expected 60 full frames with partial tail dropped, got %d", count)
	}
}

func TestFramerTimestampsGapFree(t *testing.T) {
	pcm := make([]byte, 20*960)
	framer := NewFramer(pcm, 16000, 30)

	index := 0
	for {
		frame, ok := framer.Next()
		if !ok {
			break
		}
		want := float64(index) * 0.03
		if math.Abs(frame.Timestamp-want) > 1e-9 {
			t.Fatalf("frame %d timestamp %.6f, want %.6f", index, frame.Timestamp, want)
		}
		if math.Abs(frame.Duration-0.03) > 1e-9 {
			t.Fatalf("frame %d duration %.6f, want 0.03", index, frame.Duration)
		}
		index++
	}
	if index != 20 {
		t.Fatalf("expected 20 frames, got %d", index)
	}
}

func TestFramerShortBuffer(t *testing.T) {
	framer := NewFramer(make([]byte, 959), 16000, 30)
	if _, ok := framer.Next(); ok {
		t.Fatal("expected no frames from a buffer shorter than one frame")
	}
}

func TestFramerReset(t *testing.T) {
	pcm := make([]byte, 3*960)
	framer := NewFramer(pcm, 16000, 30)
	for i := 0; i < 3; i++ {
		if _, ok := framer.Next(); !ok {
			t.Fatalf("expected frame %d", i)
		}
	}
	if _, ok := framer.Next(); ok {
		t.Fatal("expected exhausted framer")
	}

	framer.Reset()
	frame, ok := framer.Next()
	if !ok || frame.Timestamp != 0 {
		t.Fatalf("expected restart at timestamp 0, got %v ok=%v", frame.Timestamp, ok)
	}
}

func TestFramerOtherRates(t *testing.T) {
	for _, rate := range []int{8000, 16000, 32000, 48000} {
		framer := NewFramer(make([]byte, 10*rate*30/1000*2), rate, 30)
		wantSize := rate * 30 / 1000 * 2
		if framer.FrameSize() != wantSize {
			t.Fatalf("rate %d: expected frame size %d, got %d", rate, wantSize, framer.FrameSize())
		}
		frame, ok := framer.Next()
		if !ok {
			t.Fatalf("rate %d: expected a frame", rate)
		}
		if math.Abs(frame.Duration-0.03) > 1e-9 {
			t.Fatalf("rate %d: duration %.6f, want 0.03", rate, frame.Duration)
		}
	}
}
