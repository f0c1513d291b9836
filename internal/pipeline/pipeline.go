package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"vadcut/internal/catalog"
	"vadcut/internal/clip"
	"vadcut/internal/config"
	"vadcut/internal/logging"
	"vadcut/internal/segment"
	"vadcut/internal/services"
	"vadcut/internal/vad"
	"vadcut/internal/wav"
)

// Report summarizes a completed split run.
type Report struct {
	RunID      string
	Source     string
	SampleRate int
	Frames     int
	Segments   int
	Clips      []clip.Record
	Skipped    []clip.ClipError
	Elapsed    time.Duration
}

// Pipeline runs the split workflow end to end. The catalog store is optional;
// when nil, clip metadata is not persisted.
type Pipeline struct {
	cfg    *config.Config
	store  *catalog.Store
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock

	// newClassifier is swapped in tests to avoid depending on cgo.
	newClassifier func(cfg *config.Config) (vad.Classifier, error)
}

// New creates a pipeline for the given configuration.
func New(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.WorkDir, "vadcut.lock")
	return &Pipeline{
		cfg:           cfg,
		store:         store,
		logger:        logging.NewComponentLogger(logger, "pipeline"),
		lockPath:      lockPath,
		lock:          flock.New(lockPath),
		newClassifier: classifierFromConfig,
	}
}

func classifierFromConfig(cfg *config.Config) (vad.Classifier, error) {
	switch cfg.VAD.Engine {
	case "webrtc":
		return vad.NewWebRTC(cfg.VAD.Aggressiveness)
	case "energy":
		return vad.NewEnergy(cfg.VAD.EnergyThreshold)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "classifier", fmt.Sprintf("unknown VAD engine %q", cfg.VAD.Engine), nil)
	}
}

// Run splits the WAV file at audioPath into clips. When failFast is false,
// per-clip failures are reported in the Skipped field and the run continues.
func (p *Pipeline) Run(ctx context.Context, audioPath string, failFast bool) (*Report, error) {
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "run", "create directories", err)
	}

	ok, err := p.lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "run", fmt.Sprintf("acquire lock %s", p.lockPath), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "run", "another run is in progress", nil)
	}
	defer func() {
		_ = p.lock.Unlock()
	}()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithSource(ctx, audioPath)
	logger := logging.WithContext(ctx, p.logger)

	started := time.Now()
	logger.Info("run started",
		logging.String("engine", p.cfg.VAD.Engine),
		logging.Bool("fail_fast", failFast))

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "run", "read source audio", err)
	}
	payload, format, err := wav.Decode(data)
	if err != nil {
		return nil, err
	}
	logger.Info("decoded source",
		logging.Int("sample_rate", format.SampleRate),
		logging.Int("payload_bytes", len(payload)))

	classifier, err := p.newClassifier(p.cfg)
	if err != nil {
		return nil, err
	}

	framer := vad.NewFramer(payload, format.SampleRate, p.cfg.VAD.FrameMs)
	frames := len(payload) / framer.FrameSize()

	segments, err := vad.Collect(ctx, classifier, framer, format.SampleRate, p.cfg.VAD.FrameMs, p.cfg.VAD.PaddingMs)
	if err != nil {
		return nil, err
	}
	logger.Info("segments collected", logging.Int("segments", len(segments)))

	policy := segment.Policy{
		MinSeconds: p.cfg.Clips.MinSeconds,
		MaxSeconds: p.cfg.Clips.MaxSeconds,
	}
	if err := policy.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "run", "duration policy", err)
	}
	accepted := segment.Filter(segments, policy)
	logger.Info("duration policy applied",
		logging.Int("accepted", len(accepted)),
		logging.Int("rejected", len(segments)-len(accepted)))

	sink, err := wav.NewDirSink(p.cfg.Paths.ClipsDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "run", "open clips directory", err)
	}
	materializer := clip.NewMaterializer(clip.Options{
		SampleRate:          format.SampleRate,
		StartPaddingSeconds: p.cfg.Clips.StartPaddingSeconds,
		EndPaddingSeconds:   p.cfg.Clips.EndPaddingSeconds,
		NamePrefix:          p.cfg.Clips.NamePrefix,
	}, sink, logger)

	records, skipped, err := materializer.Materialize(ctx, payload, accepted, failFast)
	if err != nil {
		return nil, err
	}

	if p.store != nil && len(records) > 0 {
		run := catalog.Run{ID: runID, Source: audioPath, SampleRate: format.SampleRate}
		if err := catalog.NewRunSink(p.store, run).WriteRecords(ctx, records); err != nil {
			return nil, err
		}
	}

	report := &Report{
		RunID:      runID,
		Source:     audioPath,
		SampleRate: format.SampleRate,
		Frames:     frames,
		Segments:   len(segments),
		Clips:      records,
		Skipped:    skipped,
		Elapsed:    time.Since(started),
	}
	logger.Info("run complete",
		logging.Int("clips", len(records)),
		logging.Int("skipped", len(skipped)),
		logging.Duration("elapsed", report.Elapsed))
	return report, nil
}
