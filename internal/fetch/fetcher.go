// Package fetch downloads remote audio with yt-dlp and normalizes it to
// mono 16-bit PCM WAV with ffmpeg.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"vadcut/internal/fileutil"
	"vadcut/internal/logging"
	"vadcut/internal/services"
)

var commandContext = exec.CommandContext

// DefaultSampleRate is the target rate for normalized audio.
const DefaultSampleRate = 16000

// Fetcher shells out to yt-dlp and ffmpeg to produce analysis-ready WAV files.
type Fetcher struct {
	ytDlpBinary  string
	ffmpegBinary string
	workDir      string
	logger       *slog.Logger
}

// New returns a Fetcher that stages intermediate files under workDir.
func New(ytDlpBinary, ffmpegBinary, workDir string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fetcher{
		ytDlpBinary:  ytDlpBinary,
		ffmpegBinary: ffmpegBinary,
		workDir:      workDir,
		logger:       logging.NewComponentLogger(logger, "fetch"),
	}
}

// Fetch downloads the audio stream at url and normalizes it into dest, a WAV
// path. The intermediate download is staged in the fetcher's work directory.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string, sampleRate int) error {
	if strings.TrimSpace(url) == "" {
		return services.Wrap(services.ErrValidation, "fetch", "fetch", "source URL is empty", nil)
	}
	if err := fileutil.EnsureDir(f.workDir); err != nil {
		return services.Wrap(services.ErrConfiguration, "fetch", "fetch", "create work directory", err)
	}

	staged := filepath.Join(f.workDir, "download.m4a")
	if err := f.Download(ctx, url, staged); err != nil {
		return err
	}
	f.logger.Info("download complete", logging.String("source", url), logging.String("staged", staged))

	if err := f.Normalize(ctx, staged, dest, sampleRate); err != nil {
		return err
	}
	f.logger.Info("normalized audio ready", logging.String("path", dest), logging.Int("sample_rate", sampleRate))
	return nil
}

// Download runs yt-dlp to save the best audio stream for url at dest.
func (f *Fetcher) Download(ctx context.Context, url, dest string) error {
	if err := fileutil.EnsureParentDir(dest); err != nil {
		return services.Wrap(services.ErrConfiguration, "fetch", "download", "create download directory", err)
	}
	args := downloadArgs(url, dest)
	cmd := commandContext(ctx, f.ytDlpBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := fmt.Sprintf("yt-dlp failed: %s", strings.TrimSpace(string(output)))
		return services.Wrap(services.ErrExternalTool, "fetch", "download", detail, err)
	}
	return nil
}

// Normalize runs ffmpeg to convert source into mono 16-bit PCM WAV at the
// requested sample rate. The output is staged in the work directory and
// moved into place only after ffmpeg exits cleanly, so an interrupted run
// never leaves a truncated file at dest.
func (f *Fetcher) Normalize(ctx context.Context, source, dest string, sampleRate int) error {
	if err := fileutil.EnsureDir(f.workDir); err != nil {
		return services.Wrap(services.ErrConfiguration, "fetch", "normalize", "create work directory", err)
	}
	if err := fileutil.EnsureParentDir(dest); err != nil {
		return services.Wrap(services.ErrConfiguration, "fetch", "normalize", "create output directory", err)
	}
	staged := filepath.Join(f.workDir, "normalized.wav")
	args := normalizeArgs(source, staged, sampleRate)
	cmd := commandContext(ctx, f.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := fmt.Sprintf("ffmpeg failed: %s", strings.TrimSpace(string(output)))
		return services.Wrap(services.ErrExternalTool, "fetch", "normalize", detail, err)
	}
	if err := fileutil.MoveFile(staged, dest); err != nil {
		return services.Wrap(services.ErrSink, "fetch", "normalize", "move normalized audio into place", err)
	}
	return nil
}

func downloadArgs(url, dest string) []string {
	return []string{
		"--no-playlist",
		"--format", "bestaudio/best",
		"--output", dest,
		url,
	}
}

func normalizeArgs(source, dest string, sampleRate int) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-c:a", "pcm_s16le",
		dest,
	}
}
