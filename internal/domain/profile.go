package domain

import "time"

// TerrainType is where the ball came to rest.
type TerrainType string

const (
	TerrainGreen     TerrainType = "green"
	TerrainWater     TerrainType = "water"
	TerrainBunker    TerrainType = "bunker"
	TerrainTeeBox    TerrainType = "tee_box"
	TerrainFairway   TerrainType = "fairway"
	TerrainRough     TerrainType = "rough"
	TerrainDefault   TerrainType = "default" // out of bounds
	TerrainHoleInOne TerrainType = "hole_in_one"
)

// RestingState is how the shot ended relative to the course boundaries.
type RestingState string

const (
	RestingInBounds    RestingState = "in_bounds"
	RestingOutOfBounds RestingState = "out_of_bounds"
	RestingHoled       RestingState = "hole"
)

// DistanceMeaningless reports whether a pin distance carries no meaning
// for the given terrain (hazards, out of bounds, the ball is in the hole).
func DistanceMeaningless(t TerrainType) bool {
	switch t {
	case TerrainWater, TerrainDefault, TerrainHoleInOne:
		return true
	}
	return false
}

// ShotProfile is the normalized summary of a completed shot. It is derived
// once per shot event and never mutated afterwards.
//
// PinDistanceCM is nil when distance is not meaningful for the terrain.
type ShotProfile struct {
	Shape         string
	Terrain       TerrainType
	PinDistanceCM *float64
	Elapsed       time.Duration // physical duration of the shot animation
	Resting       RestingState
}

// PlayerProfile describes a player as received on login. Attributes is the
// raw attribute map from the event; Redacted strips it before it may cross
// into prompt construction.
type PlayerProfile struct {
	ID         string
	Attributes map[string]any
}

// redactedAttributes are identifying or narration-irrelevant fields that
// must never reach the text-generation service.
var redactedAttributes = []string{
	"player_id",
	"displayName",
	"familyName",
	"givenName",
	"birthYear",
	"legalAgreementsAccepted",
	"ballsLostPerRound",
}

// Redacted returns a copy of the attribute map with all identifying and
// irrelevant fields removed. The receiver is not modified.
func (p PlayerProfile) Redacted() map[string]any {
	out := make(map[string]any, len(p.Attributes))
	for k, v := range p.Attributes {
		out[k] = v
	}
	for _, k := range redactedAttributes {
		delete(out, k)
	}
	return out
}
