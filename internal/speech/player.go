// Package speech implements the synthesis streaming protocol, the audio
// sinks that consume it, local playback, and the pre-rendered filler clip
// library.
package speech

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
)

// Compile-time interface check.
var _ domain.AudioPlayer = (*Player)(nil)

// Player plays audio on the local output device via oto. One Player (and
// one underlying audio context) exists per process.
type Player struct {
	ctx *oto.Context
	log *logger.Logger
}

// NewPlayer initializes the system audio context. Returns an error if the
// audio device is unavailable.
func NewPlayer(log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("audio player initialized (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{ctx: ctx, log: log}, nil
}

// Play plays a complete WAV artifact synchronously.
func (p *Player) Play(wav []byte) error {
	pcm, err := extractPCM(wav)
	if err != nil {
		return err
	}
	return p.Stream(bytes.NewReader(pcm))
}

// PlayFile plays a WAV file synchronously. A missing file is
// ErrPlaybackMissing so callers can log and move on.
func (p *Player) PlayFile(path string) error {
	wav, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("speech: %s: %w", path, domain.ErrPlaybackMissing)
	}
	if err != nil {
		return fmt.Errorf("speech: reading %s: %w", path, err)
	}
	p.log.Debug("playing file %s (%d bytes)", path, len(wav))
	return p.Play(wav)
}

// Stream plays raw PCM from r until it is exhausted. Blocks for the whole
// playback, which is what gives the live sink its backpressure.
func (p *Player) Stream(r io.Reader) error {
	player := p.ctx.NewPlayer(r)
	player.Play()

	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}

// extractPCM strips the WAV/RIFF header and returns the raw PCM payload.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, errors.New("wav data too short")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, errors.New("not a valid WAV file")
	}

	// Walk chunks to find the "data" chunk.
	pos := 12
	for pos < len(wav)-8 {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, errors.New("data chunk not found in WAV")
}
