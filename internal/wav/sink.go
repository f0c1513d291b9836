package wav

import (
	"fmt"
	"os"
	"path/filepath"

	"vadcut/internal/fileutil"
)

// DirSink writes clips as WAV files into a directory. It implements the
// clip sink capability.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink writing into dir, creating it if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create clips directory %q: %w", dir, err)
	}
	return &DirSink{dir: dir}, nil
}

// Path returns the file path a clip name maps to.
func (s *DirSink) Path(name string) string {
	return filepath.Join(s.dir, name+".wav")
}

// WriteClip encodes the payload as a WAV file named after the clip.
func (s *DirSink) WriteClip(name string, sampleRate int, payload []byte) error {
	encoded, err := Encode(sampleRate, payload)
	if err != nil {
		return fmt.Errorf("encode clip %s: %w", name, err)
	}
	path := s.Path(name)
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write clip %s: %w", path, err)
	}
	return nil
}
