package vad

type classified struct {
	frame  Frame
	speech bool
}

// ring is a fixed-capacity FIFO of classified frames. Pushing past capacity
// evicts the oldest entry. The voiced count is maintained incrementally so
// trigger checks stay O(1).
type ring struct {
	entries []classified
	head    int
	count   int
	voiced  int
}

func newRing(capacity int) *ring {
	return &ring{entries: make([]classified, capacity)}
}

func (r *ring) push(frame Frame, speech bool) {
	if len(r.entries) == 0 {
		return
	}
	if r.count == len(r.entries) {
		if r.entries[r.head].speech {
			r.voiced--
		}
		r.entries[r.head] = classified{frame: frame, speech: speech}
		r.head = (r.head + 1) % len(r.entries)
	} else {
		r.entries[(r.head+r.count)%len(r.entries)] = classified{frame: frame, speech: speech}
		r.count++
	}
	if speech {
		r.voiced++
	}
}

func (r *ring) unvoiced() int {
	return r.count - r.voiced
}

// frames returns the buffered frames in insertion order.
func (r *ring) frames() []Frame {
	out := make([]Frame, 0, r.count)
	for i := 0; i < r.count; i++ {
		out = append(out, r.entries[(r.head+i)%len(r.entries)].frame)
	}
	return out
}

func (r *ring) clear() {
	r.head = 0
	r.count = 0
	r.voiced = 0
}
