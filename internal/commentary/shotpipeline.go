// Package commentary implements the orchestration core: the foreground
// shot pipeline, the background profile pipeline, and the per-connection
// event dispatcher that routes between them.
package commentary

import (
	"context"
	"fmt"
	"time"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/genai"
	"fairwaycast/internal/logger"
	"fairwaycast/internal/prompt"
	"fairwaycast/internal/speech"
)

// Timing defaults for the narration window. The live narration must start
// inside the last leadWindow of the physical shot so the spoken outcome
// lands with the visual one.
const (
	defaultLeadWindow = 1500 * time.Millisecond
	defaultMaxWait    = time.Second
)

// ShotOption configures the shot pipeline.
type ShotOption func(*ShotPipeline)

// WithLeadWindow sets how long before the shot completes narration may start.
func WithLeadWindow(d time.Duration) ShotOption {
	return func(p *ShotPipeline) { p.lead = d }
}

// WithMaxWait bounds a single wait increment in the timing-convergence loop.
func WithMaxWait(d time.Duration) ShotOption {
	return func(p *ShotPipeline) { p.maxWait = d }
}

// WithSinkFactory overrides how the live sink for a synthesis job is built.
func WithSinkFactory(f func() domain.SynthesisCallback) ShotOption {
	return func(p *ShotPipeline) { p.newSink = f }
}

// ShotPipeline is the foreground, latency-critical path. For each completed
// shot it plays an immediate filler clip, requests end-of-shot narration
// text while the ball is still moving, waits for the timing window, and
// streams the narration live. One Run is in flight at a time per
// connection; the dispatcher enforces that by being sequential.
type ShotPipeline struct {
	gen     domain.TextGenerator
	synth   domain.Synthesizer
	player  domain.AudioPlayer
	clips   *speech.ClipLibrary
	log     *logger.Logger
	lead    time.Duration
	maxWait time.Duration
	newSink func() domain.SynthesisCallback
}

// NewShotPipeline wires the foreground pipeline.
func NewShotPipeline(gen domain.TextGenerator, synth domain.Synthesizer, player domain.AudioPlayer,
	clips *speech.ClipLibrary, log *logger.Logger, opts ...ShotOption) *ShotPipeline {
	p := &ShotPipeline{
		gen:     gen,
		synth:   synth,
		player:  player,
		clips:   clips,
		log:     log,
		lead:    defaultLeadWindow,
		maxWait: defaultMaxWait,
	}
	p.newSink = func() domain.SynthesisCallback {
		return speech.NewLiveSink(p.player, p.log)
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes the pipeline for one shot and blocks until narration
// playback finishes. A failed step forfeits this shot's end narration;
// the error is reported upward and never kills the connection.
func (p *ShotPipeline) Run(ctx context.Context, profile domain.ShotProfile) error {
	start := time.Now()
	deadline := start.Add(profile.Elapsed)

	// Filler masks generation latency. A shot that is already inside the
	// narration window gets no filler, it would talk over the narration.
	if profile.Elapsed > p.lead {
		clip := p.clips.Pick(speech.CategoryFor(profile))
		go func() {
			if err := p.player.PlayFile(clip); err != nil {
				p.log.Warn("shot pipeline: filler %s: %v", clip, err)
			}
		}()
	}

	raw, err := p.gen.Generate(ctx, prompt.ShotInstruction(profile))
	if err != nil {
		return fmt.Errorf("commentary: generating shot narration: %w", err)
	}
	text, err := genai.ParseCommentary(raw)
	if err != nil {
		return fmt.Errorf("commentary: shot narration: %w", err)
	}

	p.waitForWindow(deadline)

	sink := p.newSink()
	if err := p.synth.Synthesize(ctx, speech.FixPronunciations(text), sink); err != nil {
		return fmt.Errorf("commentary: shot narration synthesis: %w", err)
	}
	return nil
}

// waitForWindow holds narration until the shot is within the lead window
// of completing. Monotonic deadline with bounded-granularity waits;
// remaining time is recomputed after every wake so jitter never pushes
// narration past the window check.
func (p *ShotPipeline) waitForWindow(deadline time.Time) {
	for {
		remaining := time.Until(deadline)
		if remaining <= p.lead {
			p.log.Debug("shot pipeline: starting narration %.2fs before shot completes", remaining.Seconds())
			return
		}
		wait := remaining - p.lead
		if wait > p.maxWait {
			wait = p.maxWait
		}
		p.log.Debug("shot pipeline: shot completes in %.2fs, holding narration", remaining.Seconds())
		time.Sleep(wait)
	}
}
