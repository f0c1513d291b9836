package clip

import (
	"context"
	"fmt"
	"log/slog"

	"vadcut/internal/logging"
	"vadcut/internal/segment"
	"vadcut/internal/services"
)

// Options configures clip materialization.
type Options struct {
	SampleRate          int
	SampleWidth         int
	StartPaddingSeconds float64
	EndPaddingSeconds   float64
	NamePrefix          string
}

// ClipError records a per-clip failure when the run continues past it.
type ClipError struct {
	Name string
	Err  error
}

func (e ClipError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Materializer extracts accepted segments from the source PCM buffer, pads
// them with silence, and writes them through the clip sink.
type Materializer struct {
	opts   Options
	sink   Sink
	logger *slog.Logger
}

// NewMaterializer creates a materializer writing through sink.
func NewMaterializer(opts Options, sink Sink, logger *slog.Logger) *Materializer {
	if opts.SampleWidth == 0 {
		opts.SampleWidth = 2
	}
	return &Materializer{
		opts:   opts,
		sink:   sink,
		logger: logging.NewComponentLogger(logger, "clip"),
	}
}

// Materialize processes the accepted segments in order. Extraction or sink
// failures are fatal for the affected clip only: the clip is skipped, the
// failure logged and collected, and the run continues. With failFast set,
// the first failure aborts instead. The returned records cover
// exactly the successfully materialized clips, in order.
func (m *Materializer) Materialize(ctx context.Context, source []byte, accepted []segment.Accepted, failFast bool) ([]Record, []ClipError, error) {
	records := make([]Record, 0, len(accepted))
	var failures []ClipError

	for _, item := range accepted {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		name := Name(m.opts.NamePrefix, item.Index)
		record, payload, err := m.build(name, source, item)
		if err == nil {
			if sinkErr := m.sink.WriteClip(name, m.opts.SampleRate, payload); sinkErr != nil {
				err = services.Wrap(services.ErrSink, "clip", "write", name, sinkErr)
			}
		}
		if err != nil {
			if failFast {
				return nil, nil, err
			}
			m.logger.Warn("clip skipped",
				logging.String(logging.FieldClip, name),
				logging.Error(err))
			failures = append(failures, ClipError{Name: name, Err: err})
			continue
		}
		records = append(records, record)
		m.logger.Info("clip written",
			logging.String(logging.FieldClip, name),
			logging.Float64("start", record.StartTime),
			logging.Float64("end", record.EndTime),
			logging.Float64("duration", record.Duration))
	}

	return records, failures, nil
}

func (m *Materializer) build(name string, source []byte, item segment.Accepted) (Record, []byte, error) {
	seg := item.Segment
	width := m.opts.SampleWidth
	offset := int(seg.Start*float64(m.opts.SampleRate)) * width
	length := int(seg.Duration()*float64(m.opts.SampleRate)) * width

	if offset < 0 || length < 0 || offset+length > len(source) {
		return Record{}, nil, services.Wrap(services.ErrOutOfRange, "clip", "extract",
			fmt.Sprintf("%s: byte range [%d, %d) exceeds source of %d bytes", name, offset, offset+length, len(source)), nil)
	}

	startSilence := int(m.opts.StartPaddingSeconds*float64(m.opts.SampleRate)) * width
	endSilence := int(m.opts.EndPaddingSeconds*float64(m.opts.SampleRate)) * width

	payload := make([]byte, startSilence+length+endSilence)
	copy(payload[startSilence:], source[offset:offset+length])

	record := Record{
		ClipName:            name,
		StartTime:           round2(seg.Start),
		EndTime:             round2(seg.End),
		Duration:            round2(seg.Duration()),
		PaddedDuration:      round2(seg.Duration() + m.opts.StartPaddingSeconds + m.opts.EndPaddingSeconds),
		StartPaddingSeconds: m.opts.StartPaddingSeconds,
		EndPaddingSeconds:   m.opts.EndPaddingSeconds,
	}
	return record, payload, nil
}
