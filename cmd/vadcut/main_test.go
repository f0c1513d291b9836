package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vadcut/internal/wav"
)

func writeCLIConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "vadcut.toml")
	content := fmt.Sprintf(`[paths]
clips_dir = %q
log_dir = %q
catalog_path = %q
work_dir = %q

[vad]
frame_ms = 30
padding_ms = 300
engine = "energy"
energy_threshold = 0.05

[clips]
min_seconds = 0.5
max_seconds = 2.0
`,
		filepath.Join(base, "clips"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "catalog.db"),
		filepath.Join(base, "work"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func writeSpeechWAV(t *testing.T) string {
	t.Helper()
	const samplesPerFrame = 480
	const totalFrames = 100
	payload := make([]byte, totalFrames*samplesPerFrame*2)
	for frame := 10; frame < 50; frame++ {
		for s := 0; s < samplesPerFrame; s++ {
			offset := (frame*samplesPerFrame + s) * 2
			binary.LittleEndian.PutUint16(payload[offset:], uint16(int16(8000)))
		}
	}
	encoded, err := wav.Encode(16000, payload)
	if err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	path := filepath.Join(t.TempDir(), "talk.wav")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSplitCommandWritesClips(t *testing.T) {
	configPath := writeCLIConfig(t)
	source := writeSpeechWAV(t)

	output, err := runCLI(t, "--config", configPath, "split", source)
	if err != nil {
		t.Fatalf("split: %v\n%s", err, output)
	}
	if !strings.Contains(output, "1 clip(s)") {
		t.Fatalf("expected one clip in report, got:\n%s", output)
	}
	if !strings.Contains(output, "clip-001") {
		t.Fatalf("expected clip name in output, got:\n%s", output)
	}

	listing, err := runCLI(t, "--config", configPath, "clips")
	if err != nil {
		t.Fatalf("clips: %v\n%s", err, listing)
	}
	if !strings.Contains(listing, "clip-001") {
		t.Fatalf("expected clip in catalog listing, got:\n%s", listing)
	}
}

func TestSplitCommandJSONReport(t *testing.T) {
	configPath := writeCLIConfig(t)
	source := writeSpeechWAV(t)

	output, err := runCLI(t, "--config", configPath, "split", source, "--json", "--no-catalog")
	if err != nil {
		t.Fatalf("split: %v\n%s", err, output)
	}
	var report struct {
		RunID    string
		Segments int
		Clips    []struct {
			ClipName string `json:"clip_name"`
		}
	}
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, output)
	}
	if report.Segments != 1 || len(report.Clips) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	listing, err := runCLI(t, "--config", configPath, "clips")
	if err != nil {
		t.Fatalf("clips: %v\n%s", err, listing)
	}
	if !strings.Contains(listing, "No clips recorded") {
		t.Fatalf("expected empty catalog with --no-catalog, got:\n%s", listing)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if output, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v\n%s", err, output)
	}

	configPath := writeCLIConfig(t)
	validated, err := runCLI(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v\n%s", err, validated)
	}
	if !strings.Contains(validated, "Configuration valid") {
		t.Fatalf("unexpected validate output:\n%s", validated)
	}
}

func TestConfigShowPrintsTOML(t *testing.T) {
	configPath := writeCLIConfig(t)
	output, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, output)
	}
	if !strings.Contains(output, "engine = 'energy'") && !strings.Contains(output, `engine = "energy"`) {
		t.Fatalf("expected engine in output:\n%s", output)
	}
}

func TestFetchRejectsUnsupportedSampleRate(t *testing.T) {
	configPath := writeCLIConfig(t)

	_, err := runCLI(t, "--config", configPath, "fetch", "https://example.com/talk", "--sample-rate", "44100")
	if err == nil {
		t.Fatal("expected fetch to reject 44100 Hz")
	}
	if !strings.Contains(err.Error(), "unsupported sample rate 44100") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDepsCommandReportsMissingFFmpeg(t *testing.T) {
	configPath := writeCLIConfig(t)
	t.Setenv("PATH", t.TempDir())

	output, err := runCLI(t, "--config", configPath, "deps")
	if err == nil {
		t.Fatalf("expected deps to fail with empty PATH, got:\n%s", output)
	}
	if !strings.Contains(err.Error(), "FFmpeg") {
		t.Fatalf("expected FFmpeg named in error, got %v", err)
	}
}

func TestDepsCommandAllPresent(t *testing.T) {
	configPath := writeCLIConfig(t)
	binDir := t.TempDir()
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, name := range []string{"ffmpeg", "yt-dlp"} {
		if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir)

	output, err := runCLI(t, "--config", configPath, "deps")
	if err != nil {
		t.Fatalf("deps: %v\n%s", err, output)
	}
	if !strings.Contains(output, "FFmpeg") || !strings.Contains(output, "yt-dlp") {
		t.Fatalf("expected both tools listed:\n%s", output)
	}
}
