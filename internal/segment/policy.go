// Package segment filters raw speech segments through the clip duration
// policy and assigns sequential clip indices to the survivors.
package segment

import (
	"fmt"

	"vadcut/internal/vad"
)

// Policy is the inclusive duration window a segment must fall inside to be
// turned into a clip.
type Policy struct {
	MinSeconds float64
	MaxSeconds float64
}

// Accepted pairs a surviving segment with its 1-based clip index. Rejected
// segments do not consume an index.
type Accepted struct {
	Index   int
	Segment vad.Segment
}

// Validate checks the policy window is well formed.
func (p Policy) Validate() error {
	if p.MinSeconds < 0 {
		return fmt.Errorf("min duration must not be negative, got %g", p.MinSeconds)
	}
	if p.MaxSeconds <= 0 {
		return fmt.Errorf("max duration must be positive, got %g", p.MaxSeconds)
	}
	if p.MinSeconds > p.MaxSeconds {
		return fmt.Errorf("min duration %g exceeds max duration %g", p.MinSeconds, p.MaxSeconds)
	}
	return nil
}

// Accepts reports whether a segment of the given duration falls inside the
// policy window. Both boundaries are inclusive.
func (p Policy) Accepts(duration float64) bool {
	return duration >= p.MinSeconds && duration <= p.MaxSeconds
}

// Filter applies the policy to segments in order, assigning indices only to
// accepted segments. A segment outside the window is a normal filtering
// outcome, not an error.
func Filter(segments []vad.Segment, policy Policy) []Accepted {
	accepted := make([]Accepted, 0, len(segments))
	index := 0
	for _, seg := range segments {
		if !policy.Accepts(seg.Duration()) {
			continue
		}
		index++
		accepted = append(accepted, Accepted{Index: index, Segment: seg})
	}
	return accepted
}
