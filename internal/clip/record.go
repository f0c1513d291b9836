package clip

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Record is the timing metadata emitted once per materialized clip.
// Time-valued fields are rounded to 2 decimal places; padding seconds are
// stored as supplied.
type Record struct {
	ClipName            string  `json:"clip_name"`
	StartTime           float64 `json:"start_time"`
	EndTime             float64 `json:"end_time"`
	Duration            float64 `json:"duration"`
	PaddedDuration      float64 `json:"padded_duration"`
	StartPaddingSeconds float64 `json:"start_padding_seconds"`
	EndPaddingSeconds   float64 `json:"end_padding_seconds"`
}

// Sink persists a padded PCM payload as a playable audio artifact.
type Sink interface {
	WriteClip(name string, sampleRate int, payload []byte) error
}

// MetadataSink persists the ordered record list, called once per run after
// all clips are materialized.
type MetadataSink interface {
	WriteRecords(ctx context.Context, records []Record) error
}

const fallbackPrefix = "clip"

// Name derives the deterministic clip name for a 1-based index:
// "<prefix>-NNN" with a zero-padded 3-digit suffix.
func Name(prefix string, index int) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = fallbackPrefix
	}
	return fmt.Sprintf("%s-%03d", prefix, index)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
