package vad

const bytesPerSample = 2

// Frame is a fixed-duration slice of 16-bit PCM samples. Samples is a view
// into the source buffer, not a copy; frames must not outlive the buffer.
type Frame struct {
	Samples   []byte
	Timestamp float64
	Duration  float64
}

// Framer walks a PCM byte buffer producing consecutive fixed-duration
// frames. Timestamps form a gap-free constant-stride sequence. A trailing
// partial frame is silently dropped, losing at most one frame duration of
// tail audio.
type Framer struct {
	pcm       []byte
	frameSize int
	duration  float64
	offset    int
	timestamp float64
}

// NewFramer creates a framer over pcm for the given sample rate and frame
// duration in milliseconds.
func NewFramer(pcm []byte, sampleRate, frameMs int) *Framer {
	frameSize := sampleRate * frameMs / 1000 * bytesPerSample
	return &Framer{
		pcm:       pcm,
		frameSize: frameSize,
		duration:  float64(frameSize) / bytesPerSample / float64(sampleRate),
	}
}

// Next returns the next full frame, or false once fewer than one frame's
// worth of bytes remains.
func (f *Framer) Next() (Frame, bool) {
	if f.frameSize <= 0 || f.offset+f.frameSize > len(f.pcm) {
		return Frame{}, false
	}
	frame := Frame{
		Samples:   f.pcm[f.offset : f.offset+f.frameSize],
		Timestamp: f.timestamp,
		Duration:  f.duration,
	}
	f.offset += f.frameSize
	f.timestamp += f.duration
	return frame, true
}

// Reset rewinds the framer to the start of the buffer.
func (f *Framer) Reset() {
	f.offset = 0
	f.timestamp = 0
}

// FrameSize returns the byte length of each produced frame.
func (f *Framer) FrameSize() int {
	return f.frameSize
}
