package speech

import (
	"fmt"
	"os"
	"path/filepath"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
)

// Compile-time interface check.
var _ domain.SynthesisCallback = (*FileSink)(nil)

// FileSink writes a synthesis stream to a durable audio artifact. The
// stream lands in a partial file that is renamed into place only on a
// clean close, so a consumer never sees a half-written artifact and
// concurrent generations for the same path cannot interleave.
type FileSink struct {
	f         *os.File
	tmpPath   string
	finalPath string
	log       *logger.Logger
	failed    bool
	released  bool
}

// NewFileSink opens the destination before synthesis starts.
func NewFileSink(path string, log *logger.Logger) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("speech: creating audio dir: %w", err)
		}
	}

	tmp := path + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("speech: opening %s: %w", tmp, err)
	}

	log.Debug("file sink: writing %s", path)
	return &FileSink{f: f, tmpPath: tmp, finalPath: path, log: log}, nil
}

// OnConnected carries no file-relevant work; the file is already open.
func (s *FileSink) OnConnected() {}

func (s *FileSink) OnAudioChunk(chunk []byte) error {
	if _, err := s.f.Write(chunk); err != nil {
		return fmt.Errorf("speech: file sink write: %w", err)
	}
	return nil
}

func (s *FileSink) OnError(err error) {
	s.log.Error("file sink: %v", err)
	s.failed = true
	s.release()
	if removeErr := os.Remove(s.tmpPath); removeErr != nil {
		s.log.Warn("file sink: removing partial %s: %v", s.tmpPath, removeErr)
	}
}

func (s *FileSink) OnClosed() {
	s.release()
	if s.failed {
		return
	}
	if err := os.Rename(s.tmpPath, s.finalPath); err != nil {
		s.log.Error("file sink: finalizing %s: %v", s.finalPath, err)
		return
	}
	s.log.Debug("file sink: completed %s", s.finalPath)
}

// release closes the file handle exactly once.
func (s *FileSink) release() {
	if s.released {
		return
	}
	s.released = true
	if err := s.f.Close(); err != nil {
		s.log.Warn("file sink: closing %s: %v", s.tmpPath, err)
	}
}
