package commentary

import (
	"errors"
	"os"
	"strings"
	"testing"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
	"fairwaycast/internal/speech"
)

func testPlayerProfile() domain.PlayerProfile {
	return domain.PlayerProfile{
		ID: "p-3",
		Attributes: map[string]any{
			"player_id": "p-3",
			"handicap":  7,
			"country":   "Ireland",
		},
	}
}

func TestProfilePipelineWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{raw: `{"commentary":"An Irish player... steady hands - watch this one."}`}
	synth := &fakeSynthesizer{}
	p := NewProfilePipeline(gen, synth, dir, "test-voice", logger.New(logger.LevelOff, nil))

	p.generate(testPlayerProfile())

	artifact := speech.ProfileAudioPath(dir, "test-voice", "p-3")
	if _, err := os.Stat(artifact); err != nil {
		t.Fatalf("introduction artifact missing: %v", err)
	}

	if len(synth.texts) != 1 {
		t.Fatalf("synthesis calls = %d, want 1", len(synth.texts))
	}
	if !strings.Contains(synth.texts[0], "<break") {
		t.Errorf("introduction text must carry SSML breaks, got %q", synth.texts[0])
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("generation calls = %d, want 1", len(gen.prompts))
	}
	if strings.Contains(gen.prompts[0], "p-3") {
		t.Error("player identity leaked into the generation instruction")
	}
}

func TestProfilePipelineFailuresLeaveNoArtifact(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"generation error", &fakeGenerator{err: errors.New("model down")}},
		{"unparseable output", &fakeGenerator{raw: "no json here"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			synth := &fakeSynthesizer{}
			p := NewProfilePipeline(tt.gen, synth, dir, "test-voice", logger.New(logger.LevelOff, nil))

			p.generate(testPlayerProfile())

			artifact := speech.ProfileAudioPath(dir, "test-voice", "p-3")
			if _, err := os.Stat(artifact); err == nil {
				t.Error("failed worker must not leave an artifact")
			}
			if len(synth.texts) != 0 {
				t.Error("no synthesis may happen after a failed generation")
			}
		})
	}
}
