package speech

import (
	"fmt"
	"io"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
)

// Compile-time interface check.
var _ domain.SynthesisCallback = (*LiveSink)(nil)

// LiveSink pushes a synthesis stream straight to the audio output device.
// The device is claimed on OnConnected and released on whichever terminal
// signal arrives. Chunk writes block while the device drains, which is the
// natural backpressure on the synthesis stream.
type LiveSink struct {
	player domain.AudioPlayer
	log    *logger.Logger

	pw   *io.PipeWriter
	done chan struct{}
}

// NewLiveSink creates a sink that plays through the given player. One sink
// serves exactly one synthesis job.
func NewLiveSink(player domain.AudioPlayer, log *logger.Logger) *LiveSink {
	return &LiveSink{player: player, log: log}
}

func (s *LiveSink) OnConnected() {
	pr, pw := io.Pipe()
	s.pw = pw
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.player.Stream(pr); err != nil {
			s.log.Error("live sink: playback: %v", err)
		}
	}()
	s.log.Debug("live sink: output device streaming")
}

func (s *LiveSink) OnAudioChunk(chunk []byte) error {
	if s.pw == nil {
		return fmt.Errorf("speech: live sink got audio before connect")
	}
	if _, err := s.pw.Write(chunk); err != nil {
		return fmt.Errorf("speech: live sink write: %w", err)
	}
	return nil
}

func (s *LiveSink) OnError(err error) {
	s.log.Error("live sink: %v", err)
	s.release()
}

func (s *LiveSink) OnClosed() {
	s.log.Debug("live sink: stream closed")
	s.release()
}

// release ends the pipe and waits for the device goroutine to finish.
// Safe to call from both terminal signals.
func (s *LiveSink) release() {
	if s.pw == nil {
		return
	}
	s.pw.Close()
	s.pw = nil
	<-s.done
}
