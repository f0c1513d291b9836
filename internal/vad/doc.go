// Package vad implements the voice-activity segmentation engine: framing a
// raw PCM stream, classifying each frame as speech or non-speech, and
// running a hysteresis state machine over a bounded lookback window to find
// speech segment boundaries.
package vad
