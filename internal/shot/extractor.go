// Package shot normalizes raw shot-completion events into compact, typed
// shot profiles consumed by the commentary pipelines.
package shot

import (
	"encoding/json"
	"fmt"
	"time"

	"fairwaycast/internal/domain"
)

// Wire shapes of the shot_data payload. Pointers everywhere so a missing
// nested object is distinguishable from a zero value.
type shotPayload struct {
	ShotComplete *struct {
		Data *shotData `json:"data"`
	} `json:"shot_complete"`
}

type shotData struct {
	ShotShape    *string           `json:"shot_shape"`
	RestingState *string           `json:"resting_state"`
	Segments     []motionSegment   `json:"segments"`
	Snapshots    []terrainSnapshot `json:"snapshots"`
}

type motionSegment struct {
	Points []struct {
		Time float64 `json:"time"`
	} `json:"points"`
}

type terrainSnapshot struct {
	TerrainType *string  `json:"terrain_type"`
	PinDistance *float64 `json:"pin_distance"`
}

// ExtractProfile builds a ShotProfile from a shot-completion event. The
// last point of the last motion segment gives the physical shot duration;
// the last terrain snapshot gives the final terrain and pin distance.
//
// Any missing required field yields ErrMalformedEvent, which is fatal for
// this event only.
func ExtractProfile(ev domain.InboundEvent) (domain.ShotProfile, error) {
	var payload shotPayload
	if err := json.Unmarshal(ev.Raw, &payload); err != nil {
		return domain.ShotProfile{}, fmt.Errorf("shot: decoding payload: %w", err)
	}
	if payload.ShotComplete == nil || payload.ShotComplete.Data == nil {
		return domain.ShotProfile{}, fmt.Errorf("shot: shot_complete.data missing: %w", domain.ErrMalformedEvent)
	}
	data := payload.ShotComplete.Data

	if data.ShotShape == nil {
		return domain.ShotProfile{}, fmt.Errorf("shot: shot_shape missing: %w", domain.ErrMalformedEvent)
	}

	if len(data.Segments) == 0 {
		return domain.ShotProfile{}, fmt.Errorf("shot: no motion segments: %w", domain.ErrMalformedEvent)
	}
	last := data.Segments[len(data.Segments)-1]
	if len(last.Points) == 0 {
		return domain.ShotProfile{}, fmt.Errorf("shot: final segment has no points: %w", domain.ErrMalformedEvent)
	}
	elapsed := time.Duration(last.Points[len(last.Points)-1].Time * float64(time.Second))

	if len(data.Snapshots) == 0 {
		return domain.ShotProfile{}, fmt.Errorf("shot: no terrain snapshots: %w", domain.ErrMalformedEvent)
	}
	final := data.Snapshots[len(data.Snapshots)-1]
	if final.TerrainType == nil {
		return domain.ShotProfile{}, fmt.Errorf("shot: final snapshot has no terrain_type: %w", domain.ErrMalformedEvent)
	}

	profile := domain.ShotProfile{
		Shape:         *data.ShotShape,
		Terrain:       domain.TerrainType(*final.TerrainType),
		PinDistanceCM: final.PinDistance,
		Elapsed:       elapsed,
		Resting:       domain.RestingInBounds,
	}
	if data.RestingState != nil {
		profile.Resting = domain.RestingState(*data.RestingState)
	}

	// A holed shot is its own terrain category no matter where the raw
	// snapshot says the ball ended up.
	if profile.Resting == domain.RestingHoled {
		profile.Terrain = domain.TerrainHoleInOne
	}
	if domain.DistanceMeaningless(profile.Terrain) {
		profile.PinDistanceCM = nil
	}

	return profile, nil
}
