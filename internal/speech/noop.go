package speech

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
)

// Compile-time interface check.
var _ domain.AudioPlayer = (*NoOpPlayer)(nil)

// NoOpPlayer discards all audio. Used when the process runs without an
// audio device (-no-speech) so the rest of the engine behaves identically.
type NoOpPlayer struct {
	log *logger.Logger
}

// NewNoOpPlayer creates a player that discards everything it is given.
func NewNoOpPlayer(log *logger.Logger) *NoOpPlayer {
	return &NoOpPlayer{log: log}
}

// Play discards the artifact.
func (n *NoOpPlayer) Play(wav []byte) error {
	n.log.Debug("player no-op: would play %d bytes", len(wav))
	return nil
}

// PlayFile discards the artifact but still reports a missing file, so a
// process running without an audio device logs the same way a real one
// does.
func (n *NoOpPlayer) PlayFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("speech: %s: %w", path, domain.ErrPlaybackMissing)
	}
	n.log.Debug("player no-op: would play %s", path)
	return nil
}

// Stream drains the reader so upstream backpressure still works.
func (n *NoOpPlayer) Stream(r io.Reader) error {
	written, err := io.Copy(io.Discard, r)
	n.log.Debug("player no-op: drained %d streamed bytes", written)
	return err
}
