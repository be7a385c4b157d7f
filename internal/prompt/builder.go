package prompt

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"fairwaycast/internal/domain"
)

// Distance unit conversion. Distances at or above the cutoff read better
// in yards; closer shots are called in feet.
const (
	cmPerFoot    = 30.48
	cmPerYard    = 91.44
	yardCutoffCM = 10 * cmPerYard
)

// FormatDistance renders a pin distance in centimeters as a rounded,
// unit-labeled string. Returns nil for nil input so callers can omit the
// distance entirely.
func FormatDistance(cm *float64) *string {
	if cm == nil {
		return nil
	}
	var s string
	if *cm >= yardCutoffCM {
		s = fmt.Sprintf("%d yards", int(math.Round(*cm/cmPerYard)))
	} else {
		s = fmt.Sprintf("%d feet", int(math.Round(*cm/cmPerFoot)))
	}
	return &s
}

// sentimentLine maps a terrain to the outcome framing the commentary
// should take.
func sentimentLine(t domain.TerrainType) string {
	switch t {
	case domain.TerrainGreen:
		return outcomeFavorable
	case domain.TerrainWater, domain.TerrainDefault:
		return outcomePenalty
	case domain.TerrainBunker, domain.TerrainTeeBox:
		return outcomeUnfavorable
	case domain.TerrainHoleInOne:
		return outcomeExceptional
	}
	return outcomeNeutral
}

// ShotInstruction builds the end-of-shot narration instruction. Pure:
// identical profiles yield byte-identical text.
func ShotInstruction(p domain.ShotProfile) string {
	var b strings.Builder
	b.WriteString(shotHeader)
	b.WriteString("\n")
	b.WriteString(sentimentLine(p.Terrain))
	b.WriteString("\nDo not begin the commentary with any of the following phrases: ")
	for i, opener := range clicheOpeners {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", opener)
	}
	b.WriteString(".\n")
	b.WriteString(outputContract)
	b.WriteString("\n\nInput:\n")
	fmt.Fprintf(&b, "Shot Shape: %s\n", p.Shape)
	fmt.Fprintf(&b, "Final Terrain Type: %s\n", p.Terrain)
	if dist := FormatDistance(p.PinDistanceCM); dist != nil {
		fmt.Fprintf(&b, "Distance to pin: %s\n", *dist)
	}
	b.WriteString("\nJSON:\n")
	return b.String()
}

// usCountryNames are the spellings under which the simulator reports a
// United States residence.
var usCountryNames = map[string]bool{
	"United States of America": true,
	"United States":            true,
	"USA":                      true,
	"US":                       true,
}

// ProfileInstruction builds the player-introduction instruction from an
// already-typed player profile. The profile is redacted before any of it
// reaches the instruction text.
//
// Location rule: for US players the introduction names the state and never
// the country; for everyone else the country stands alone.
func ProfileInstruction(p domain.PlayerProfile) string {
	attrs := p.Redacted()

	country, _ := attrs["country"].(string)
	state, _ := attrs["state_province"].(string)
	delete(attrs, "country")
	delete(attrs, "state_province")
	switch {
	case usCountryNames[country] && state != "":
		attrs["location"] = state
	case country != "":
		attrs["location"] = country
	}

	// encoding/json sorts map keys, so the payload is deterministic.
	payload, _ := json.Marshal(attrs)

	var b strings.Builder
	b.WriteString(profileHeader)
	fmt.Fprintf(&b, " Use this information to output %d full sentences of summary about the player.", maxProfileSentences)
	b.WriteString(" Do not use a player name. Use a formal personality with a good-natured sense of humor. ")
	b.WriteString(outputContract)
	b.WriteString("\nInput:\n")
	b.Write(payload)
	b.WriteString("\nJSON:\n")
	return b.String()
}
