package domain

import (
	"context"
	"io"
)

// TextGenerator is the call contract to the remote text-generation service:
// submit a fully-composed prompt, receive the raw model output. No retry is
// built in; a caller that loses a call forfeits that narration opportunity.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SynthesisCallback is the push surface the synthesis stream drives. Signal
// order and cardinality: OnConnected at most once before any audio;
// OnAudioChunk zero or more times; OnError zero or once, terminal;
// OnClosed exactly once, terminal. Implementations must release any
// acquired resource on every terminal signal.
type SynthesisCallback interface {
	OnConnected()
	OnAudioChunk(chunk []byte) error
	OnError(err error)
	OnClosed()
}

// Synthesizer streams synthesized speech for the given text into the
// callback. Blocks until the stream terminates.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, cb SynthesisCallback) error
}

// AudioPlayer plays audio on the local output device. Play and PlayFile
// consume complete WAV artifacts and block until playback finishes; Stream
// consumes raw PCM until the reader is exhausted.
type AudioPlayer interface {
	Play(wav []byte) error
	PlayFile(path string) error
	Stream(r io.Reader) error
}
