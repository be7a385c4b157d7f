package prompt

import (
	"strings"
	"testing"

	"fairwaycast/internal/domain"
)

func cm(v float64) *float64 { return &v }

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string // empty means nil expected
	}{
		{"nil stays nil", nil, ""},
		{"below cutoff in feet", cm(600), "20 feet"},
		{"just under cutoff", cm(914), "30 feet"},
		{"at cutoff in yards", cm(914.4), "10 yards"},
		{"long in yards", cm(4572), "50 yards"},
		{"rounds feet", cm(100), "3 feet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDistance(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("got %q, want nil", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("got %v, want %q", got, tt.want)
			}
		})
	}
}

func TestShotInstructionSentiment(t *testing.T) {
	tests := []struct {
		terrain     domain.TerrainType
		wantLine    string
		wantPenalty bool
	}{
		{domain.TerrainGreen, outcomeFavorable, false},
		{domain.TerrainWater, outcomePenalty, true},
		{domain.TerrainDefault, outcomePenalty, true},
		{domain.TerrainBunker, outcomeUnfavorable, false},
		{domain.TerrainTeeBox, outcomeUnfavorable, false},
		{domain.TerrainHoleInOne, outcomeExceptional, false},
		{domain.TerrainFairway, outcomeNeutral, false},
		{domain.TerrainRough, outcomeNeutral, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.terrain), func(t *testing.T) {
			instr := ShotInstruction(domain.ShotProfile{Shape: "draw", Terrain: tt.terrain})
			if !strings.Contains(instr, tt.wantLine) {
				t.Errorf("instruction missing outcome line %q", tt.wantLine)
			}
			if penalty := strings.Contains(instr, "penalty"); penalty != tt.wantPenalty {
				t.Errorf("penalty mention = %v, want %v", penalty, tt.wantPenalty)
			}
		})
	}
}

func TestShotInstructionDistance(t *testing.T) {
	withDist := ShotInstruction(domain.ShotProfile{Shape: "draw", Terrain: domain.TerrainGreen, PinDistanceCM: cm(600)})
	if !strings.Contains(withDist, "Distance to pin: 20 feet") {
		t.Errorf("instruction missing distance line:\n%s", withDist)
	}

	noDist := ShotInstruction(domain.ShotProfile{Shape: "draw", Terrain: domain.TerrainWater})
	if strings.Contains(noDist, "Distance to pin") {
		t.Errorf("nil distance must be omitted entirely:\n%s", noDist)
	}
}

func TestShotInstructionExcludesCliches(t *testing.T) {
	instr := ShotInstruction(domain.ShotProfile{Shape: "fade", Terrain: domain.TerrainGreen})
	if !strings.Contains(instr, "Do not begin the commentary") {
		t.Fatal("instruction missing the opener exclusion list")
	}
	for _, opener := range clicheOpeners {
		if !strings.Contains(instr, opener) {
			t.Errorf("exclusion list missing %q", opener)
		}
	}
}

func TestShotInstructionIdempotent(t *testing.T) {
	p := domain.ShotProfile{Shape: "draw", Terrain: domain.TerrainGreen, PinDistanceCM: cm(600)}
	if ShotInstruction(p) != ShotInstruction(p) {
		t.Error("identical profiles must produce byte-identical instructions")
	}
}

func TestProfileInstructionRedaction(t *testing.T) {
	p := domain.PlayerProfile{
		ID: "p-17",
		Attributes: map[string]any{
			"player_id":               "p-17",
			"displayName":             "Big Jim",
			"familyName":              "Kowalski",
			"givenName":               "James",
			"birthYear":               1977,
			"legalAgreementsAccepted": true,
			"ballsLostPerRound":       3,
			"handicap":                12.4,
			"experience":              "15 years",
		},
	}

	instr := ProfileInstruction(p)
	for _, leak := range []string{"p-17", "Big Jim", "Kowalski", "James", "1977", "legalAgreements", "ballsLost"} {
		if strings.Contains(instr, leak) {
			t.Errorf("redacted value %q leaked into instruction", leak)
		}
	}
	for _, keep := range []string{"handicap", "12.4", "15 years"} {
		if !strings.Contains(instr, keep) {
			t.Errorf("narration-relevant value %q missing from instruction", keep)
		}
	}
}

func TestProfileInstructionLocationRule(t *testing.T) {
	us := domain.PlayerProfile{ID: "p-1", Attributes: map[string]any{
		"player_id":      "p-1",
		"country":        "United States of America",
		"state_province": "CA",
	}}
	instr := ProfileInstruction(us)
	if !strings.Contains(instr, "CA") {
		t.Error("US profile must include the state")
	}
	if strings.Contains(instr, "United States") {
		t.Error("US profile must never include the country")
	}

	abroad := domain.PlayerProfile{ID: "p-2", Attributes: map[string]any{
		"player_id": "p-2",
		"country":   "Scotland",
	}}
	if instr := ProfileInstruction(abroad); !strings.Contains(instr, "Scotland") {
		t.Error("non-US profile must keep the country")
	}
}

func TestProfileInstructionIdempotent(t *testing.T) {
	p := domain.PlayerProfile{ID: "p-9", Attributes: map[string]any{
		"player_id": "p-9",
		"handicap":  8,
		"country":   "Ireland",
	}}
	if ProfileInstruction(p) != ProfileInstruction(p) {
		t.Error("identical profiles must produce byte-identical instructions")
	}
}
