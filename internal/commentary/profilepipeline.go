package commentary

import (
	"context"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/genai"
	"fairwaycast/internal/logger"
	"fairwaycast/internal/prompt"
	"fairwaycast/internal/speech"
)

// ProfilePipeline is the background path. Each player login spawns an
// isolated worker that generates an introduction and synthesizes it into a
// file keyed by player identity. Workers share nothing with the event
// loop; the artifact file is the only hand-off. Failures are logged and
// otherwise silent; a missing artifact is only noticed when playback is
// attempted.
type ProfilePipeline struct {
	gen      domain.TextGenerator
	synth    domain.Synthesizer
	audioDir string
	voice    string
	log      *logger.Logger
}

// NewProfilePipeline wires the background pipeline. The synthesizer should
// request a durable encoding (WAV) since the output is an artifact file.
func NewProfilePipeline(gen domain.TextGenerator, synth domain.Synthesizer,
	audioDir, voice string, log *logger.Logger) *ProfilePipeline {
	return &ProfilePipeline{
		gen:      gen,
		synth:    synth,
		audioDir: audioDir,
		voice:    voice,
		log:      log,
	}
}

// Spawn starts a worker for the profile and returns immediately so the
// event loop never waits on introduction generation.
func (p *ProfilePipeline) Spawn(profile domain.PlayerProfile) {
	p.log.Debug("profile pipeline: generating introduction for player %s", profile.ID)
	go p.generate(profile)
}

// generate runs one worker to completion. There is no cancellation: once
// started, a worker finishes or fails on its own.
func (p *ProfilePipeline) generate(profile domain.PlayerProfile) {
	ctx := context.Background()

	raw, err := p.gen.Generate(ctx, prompt.ProfileInstruction(profile))
	if err != nil {
		p.log.Error("profile pipeline: player %s: generation: %v", profile.ID, err)
		return
	}
	text, err := genai.ParseCommentary(raw)
	if err != nil {
		p.log.Error("profile pipeline: player %s: %v", profile.ID, err)
		return
	}

	path := speech.ProfileAudioPath(p.audioDir, p.voice, profile.ID)
	sink, err := speech.NewFileSink(path, p.log)
	if err != nil {
		p.log.Error("profile pipeline: player %s: %v", profile.ID, err)
		return
	}

	if err := p.synth.Synthesize(ctx, speech.EnhanceBreaks(text), sink); err != nil {
		p.log.Error("profile pipeline: player %s: synthesis: %v", profile.ID, err)
		return
	}
	p.log.Info("profile pipeline: introduction ready for player %s", profile.ID)
}
