package clip

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"vadcut/internal/segment"
	"vadcut/internal/services"
	"vadcut/internal/vad"
)

type memSink struct {
	clips map[string][]byte
	fail  map[string]error
}

func newMemSink() *memSink {
	return &memSink{clips: make(map[string][]byte), fail: make(map[string]error)}
}

func (s *memSink) WriteClip(name string, sampleRate int, payload []byte) error {
	if err := s.fail[name]; err != nil {
		return err
	}
	s.clips[name] = append([]byte(nil), payload...)
	return nil
}

// source builds a PCM buffer whose byte at position i is byte(i) so
// extraction offsets are verifiable.
func patternedSource(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i)
	}
	return buf
}

func TestMaterializeExtractsExactRange(t *testing.T) {
	// 1000 Hz keeps the arithmetic readable: one second is 2000 bytes.
	source := patternedSource(10 * 2000)
	sink := newMemSink()
	m := NewMaterializer(Options{SampleRate: 1000, NamePrefix: "talk"}, sink, nil)

	accepted := []segment.Accepted{{Index: 1, Segment: vad.Segment{Start: 1, End: 3}}}
	records, failures, err := m.Materialize(context.Background(), source, accepted, false)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}

	payload := sink.clips["talk-001"]
	if !bytes.Equal(payload, source[2000:6000]) {
		t.Fatalf("payload does not match source byte range, got %d bytes", len(payload))
	}
	rec := records[0]
	if rec.ClipName != "talk-001" || rec.StartTime != 1 || rec.EndTime != 3 || rec.Duration != 2 {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestMaterializeZeroPaddingRoundTrip(t *testing.T) {
	source := patternedSource(8000)
	sink := newMemSink()
	m := NewMaterializer(Options{SampleRate: 1000}, sink, nil)

	accepted := []segment.Accepted{{Index: 1, Segment: vad.Segment{Start: 0.5, End: 2.5}}}
	records, _, err := m.Materialize(context.Background(), source, accepted, false)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if records[0].PaddedDuration != records[0].Duration {
		t.Fatalf("zero padding must keep padded == duration, got %+v", records[0])
	}
	if len(sink.clips["clip-001"]) != 4000 {
		t.Fatalf("expected no injected silence, got %d bytes", len(sink.clips["clip-001"]))
	}
}

func TestMaterializeSilencePadding(t *testing.T) {
	source := patternedSource(4000)
	sink := newMemSink()
	m := NewMaterializer(Options{
		SampleRate:          1000,
		StartPaddingSeconds: 0.5,
		EndPaddingSeconds:   0.25,
	}, sink, nil)

	accepted := []segment.Accepted{{Index: 1, Segment: vad.Segment{Start: 0, End: 1}}}
	records, _, err := m.Materialize(context.Background(), source, accepted, false)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	payload := sink.clips["clip-001"]
	wantLen := 1000 + 2000 + 500 // 0.5s silence + 1s audio + 0.25s silence at 2 bytes/sample
	if len(payload) != wantLen {
		t.Fatalf("expected %d-byte payload, got %d", wantLen, len(payload))
	}
	for i := 0; i < 1000; i++ {
		if payload[i] != 0 {
			t.Fatalf("leading padding not silent at byte %d", i)
		}
	}
	for i := 3000; i < wantLen; i++ {
		if payload[i] != 0 {
			t.Fatalf("trailing padding not silent at byte %d", i)
		}
	}
	if !bytes.Equal(payload[1000:3000], source[0:2000]) {
		t.Fatal("audio bytes shifted by padding do not match source")
	}
	rec := records[0]
	if rec.PaddedDuration != 1.75 || rec.StartPaddingSeconds != 0.5 || rec.EndPaddingSeconds != 0.25 {
		t.Fatalf("unexpected padding fields %+v", rec)
	}
}

func TestMaterializeOutOfRangeSkipsClip(t *testing.T) {
	source := patternedSource(2000)
	sink := newMemSink()
	m := NewMaterializer(Options{SampleRate: 1000}, sink, nil)

	accepted := []segment.Accepted{
		{Index: 1, Segment: vad.Segment{Start: 0, End: 0.5}},
		{Index: 2, Segment: vad.Segment{Start: 0.5, End: 5}}, // past end of source
		{Index: 3, Segment: vad.Segment{Start: 0.5, End: 1}},
	}
	records, failures, err := m.Materialize(context.Background(), source, accepted, false)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two surviving clips, got %d", len(records))
	}
	if len(failures) != 1 || failures[0].Name != "clip-002" {
		t.Fatalf("expected clip-002 failure, got %v", failures)
	}
	if !errors.Is(failures[0].Err, services.ErrOutOfRange) {
		t.Fatalf("expected out-of-range marker, got %v", failures[0].Err)
	}
}

func TestMaterializeFailFast(t *testing.T) {
	source := patternedSource(2000)
	sink := newMemSink()
	m := NewMaterializer(Options{SampleRate: 1000}, sink, nil)

	accepted := []segment.Accepted{
		{Index: 1, Segment: vad.Segment{Start: 0, End: 5}},
		{Index: 2, Segment: vad.Segment{Start: 0, End: 0.5}},
	}
	_, _, err := m.Materialize(context.Background(), source, accepted, true)
	if !errors.Is(err, services.ErrOutOfRange) {
		t.Fatalf("expected immediate out-of-range failure, got %v", err)
	}
	if len(sink.clips) != 0 {
		t.Fatalf("expected no clips written after fail-fast abort, got %v", sink.clips)
	}
}

func TestMaterializeSinkErrorCollected(t *testing.T) {
	source := patternedSource(4000)
	sink := newMemSink()
	sink.fail["clip-001"] = errors.New("disk full")
	m := NewMaterializer(Options{SampleRate: 1000}, sink, nil)

	accepted := []segment.Accepted{
		{Index: 1, Segment: vad.Segment{Start: 0, End: 1}},
		{Index: 2, Segment: vad.Segment{Start: 1, End: 2}},
	}
	records, failures, err := m.Materialize(context.Background(), source, accepted, false)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(records) != 1 || records[0].ClipName != "clip-002" {
		t.Fatalf("expected only clip-002 to survive, got %v", records)
	}
	if len(failures) != 1 || !errors.Is(failures[0].Err, services.ErrSink) {
		t.Fatalf("expected sink failure for clip-001, got %v", failures)
	}
}

func TestMaterializeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMaterializer(Options{SampleRate: 1000}, newMemSink(), nil)
	_, _, err := m.Materialize(ctx, patternedSource(2000), []segment.Accepted{{Index: 1, Segment: vad.Segment{Start: 0, End: 0.5}}}, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
}

func TestNameDeterministic(t *testing.T) {
	if got := Name("talk", 7); got != "talk-007" {
		t.Fatalf("expected talk-007, got %q", got)
	}
	if got := Name("", 12); got != "clip-012" {
		t.Fatalf("expected fallback prefix, got %q", got)
	}
	if Name("x", 3) != Name("x", 3) {
		t.Fatal("naming must be deterministic")
	}
	if got := Name("x", 1234); got != "x-1234" {
		t.Fatalf("indices past 999 keep their digits, got %q", got)
	}
}
