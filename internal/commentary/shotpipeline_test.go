package commentary

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
	"fairwaycast/internal/speech"
)

// fakeGenerator returns canned raw model output.
type fakeGenerator struct {
	mu      sync.Mutex
	raw     string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.raw, g.err
}

// fakeSynthesizer records synthesis calls and drives the callback through
// a minimal successful stream.
type fakeSynthesizer struct {
	mu    sync.Mutex
	texts []string
	times []time.Time
	err   error
}

func (s *fakeSynthesizer) Synthesize(_ context.Context, text string, cb domain.SynthesisCallback) error {
	s.mu.Lock()
	s.texts = append(s.texts, text)
	s.times = append(s.times, time.Now())
	s.mu.Unlock()

	if s.err != nil {
		cb.OnError(s.err)
		cb.OnClosed()
		return s.err
	}
	cb.OnConnected()
	cb.OnAudioChunk([]byte("pcm"))
	cb.OnClosed()
	return nil
}

// fakePlayer records playback without touching an audio device.
type fakePlayer struct {
	mu    sync.Mutex
	files []string
}

func (p *fakePlayer) Play([]byte) error { return nil }

func (p *fakePlayer) PlayFile(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files = append(p.files, path)
	return nil
}

func (p *fakePlayer) Stream(r io.Reader) error {
	_, err := io.Copy(io.Discard, r)
	return err
}

func (p *fakePlayer) playedFiles() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.files...)
}

func newTestPipeline(gen *fakeGenerator, synth *fakeSynthesizer, player *fakePlayer, lead time.Duration) *ShotPipeline {
	log := logger.New(logger.LevelOff, nil)
	return NewShotPipeline(gen, synth, player, speech.NewClipLibrary("audio", "test-voice", log), log,
		WithLeadWindow(lead),
		WithMaxWait(20*time.Millisecond),
	)
}

func greenShot(elapsed time.Duration) domain.ShotProfile {
	dist := 600.0
	return domain.ShotProfile{
		Shape:         "draw",
		Terrain:       domain.TerrainGreen,
		PinDistanceCM: &dist,
		Elapsed:       elapsed,
		Resting:       domain.RestingInBounds,
	}
}

func TestShotPipelineTimingWindow(t *testing.T) {
	gen := &fakeGenerator{raw: `{"commentary":"A lovely draw onto the green."}`}
	synth := &fakeSynthesizer{}
	player := &fakePlayer{}
	lead := 100 * time.Millisecond
	pipeline := newTestPipeline(gen, synth, player, lead)

	elapsed := 400 * time.Millisecond
	start := time.Now()
	if err := pipeline.Run(context.Background(), greenShot(elapsed)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(synth.times) != 1 {
		t.Fatalf("synthesis calls = %d, want 1", len(synth.times))
	}
	// Narration may start no earlier than elapsed-lead after pipeline start.
	earliest := start.Add(elapsed - lead)
	if synth.times[0].Before(earliest) {
		t.Errorf("narration started %s too early", earliest.Sub(synth.times[0]))
	}
	// And not grossly late either: well before the shot is long over.
	if latest := start.Add(elapsed + 150*time.Millisecond); synth.times[0].After(latest) {
		t.Errorf("narration started %s after the shot completed", synth.times[0].Sub(start.Add(elapsed)))
	}
}

func TestShotPipelinePlaysFillerFromOutcomeCategory(t *testing.T) {
	gen := &fakeGenerator{raw: `{"commentary":"ok"}`}
	synth := &fakeSynthesizer{}
	player := &fakePlayer{}
	pipeline := newTestPipeline(gen, synth, player, 50*time.Millisecond)

	if err := pipeline.Run(context.Background(), greenShot(200*time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Filler playback is fire-and-forget; give the goroutine a moment.
	deadline := time.Now().Add(time.Second)
	for len(player.playedFiles()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	files := player.playedFiles()
	if len(files) != 1 {
		t.Fatalf("filler plays = %d, want 1", len(files))
	}
	if !strings.Contains(files[0], "good_") {
		t.Errorf("green shot must use a good-category filler, got %s", files[0])
	}
}

func TestShotPipelineSkipsFillerForInstantShot(t *testing.T) {
	gen := &fakeGenerator{raw: `{"commentary":"ok"}`}
	synth := &fakeSynthesizer{}
	player := &fakePlayer{}
	pipeline := newTestPipeline(gen, synth, player, 100*time.Millisecond)

	if err := pipeline.Run(context.Background(), greenShot(20*time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if files := player.playedFiles(); len(files) != 0 {
		t.Errorf("no filler should play inside the narration window, got %v", files)
	}
}

func TestShotPipelineAppliesPronunciations(t *testing.T) {
	gen := &fakeGenerator{raw: `{"commentary":"Putting practice pays off."}`}
	synth := &fakeSynthesizer{}
	pipeline := newTestPipeline(gen, synth, &fakePlayer{}, 50*time.Millisecond)

	if err := pipeline.Run(context.Background(), greenShot(60*time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(synth.texts) != 1 || !strings.Contains(synth.texts[0], "phoneme") {
		t.Errorf("live narration must carry pronunciation overrides, got %q", synth.texts)
	}
}

func TestShotPipelineGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	synth := &fakeSynthesizer{}
	pipeline := newTestPipeline(gen, synth, &fakePlayer{}, 50*time.Millisecond)

	if err := pipeline.Run(context.Background(), greenShot(60*time.Millisecond)); err == nil {
		t.Fatal("expected error when generation fails")
	}
	if len(synth.texts) != 0 {
		t.Error("no synthesis may happen after a failed generation")
	}
}

func TestShotPipelineUnparseableResponse(t *testing.T) {
	gen := &fakeGenerator{raw: "the model rambled with no json at all"}
	synth := &fakeSynthesizer{}
	pipeline := newTestPipeline(gen, synth, &fakePlayer{}, 50*time.Millisecond)

	err := pipeline.Run(context.Background(), greenShot(60*time.Millisecond))
	if !errors.Is(err, domain.ErrResponseParse) {
		t.Fatalf("got %v, want ErrResponseParse", err)
	}
	if len(synth.texts) != 0 {
		t.Error("no synthesis may happen after an unparseable response")
	}
}
