// Package domain holds the core types, ports, and error taxonomy shared
// across the commentary engine. It has no external dependencies so every
// layer can import it freely.
package domain

import (
	"encoding/json"
	"fmt"
)

// Inbound event type tags, as sent by the simulator over the websocket.
const (
	EventPing         = "ping"
	EventPlaybackDone = "shot_playback_done"
	EventClubSelected = "selected_club"
	EventGameData     = "game_and_environment_data"
	EventMatchExit    = "match_exit"
	EventUserProfile  = "user_profile"
	EventUserReady    = "user_data"
	EventShotComplete = "shot_data"
)

// noProcessingTypes are acked immediately without any commentary work.
var noProcessingTypes = map[string]bool{
	EventPing:         true,
	EventPlaybackDone: true,
	EventClubSelected: true,
	EventGameData:     true,
	EventMatchExit:    true,
}

// NoProcessingRequired reports whether an event type only needs an ack.
func NoProcessingRequired(eventType string) bool {
	return noProcessingTypes[eventType]
}

// InboundEvent is one decoded message from the simulator. Raw keeps the
// full message body so type-specific payloads can be extracted lazily.
// Events are consumed immediately by the dispatcher and never retained.
type InboundEvent struct {
	Type string
	Raw  json.RawMessage
}

// DecodeEvent parses a raw websocket message into an InboundEvent.
func DecodeEvent(data []byte) (InboundEvent, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return InboundEvent{}, fmt.Errorf("domain: decoding event: %w", err)
	}
	if envelope.Type == "" {
		return InboundEvent{}, fmt.Errorf("domain: event has no type tag: %w", ErrMalformedEvent)
	}
	return InboundEvent{Type: envelope.Type, Raw: json.RawMessage(data)}, nil
}

// ParsePlayerProfile extracts the player profile from a user_profile event.
func ParsePlayerProfile(ev InboundEvent) (PlayerProfile, error) {
	var payload struct {
		UserProfile map[string]any `json:"user_profile"`
	}
	if err := json.Unmarshal(ev.Raw, &payload); err != nil {
		return PlayerProfile{}, fmt.Errorf("domain: decoding user_profile payload: %w", err)
	}
	if payload.UserProfile == nil {
		return PlayerProfile{}, fmt.Errorf("domain: user_profile missing: %w", ErrMalformedEvent)
	}
	id, _ := payload.UserProfile["player_id"].(string)
	if id == "" {
		return PlayerProfile{}, fmt.Errorf("domain: user_profile has no player_id: %w", ErrMalformedEvent)
	}
	return PlayerProfile{ID: id, Attributes: payload.UserProfile}, nil
}

// ParseReadyPlayerID extracts the player identity from a user_data
// ("ready to shoot") event.
func ParseReadyPlayerID(ev InboundEvent) (string, error) {
	var payload struct {
		UserProfile *struct {
			Data *struct {
				PlayerID string `json:"player_id"`
			} `json:"data"`
		} `json:"user_profile"`
	}
	if err := json.Unmarshal(ev.Raw, &payload); err != nil {
		return "", fmt.Errorf("domain: decoding user_data payload: %w", err)
	}
	if payload.UserProfile == nil || payload.UserProfile.Data == nil || payload.UserProfile.Data.PlayerID == "" {
		return "", fmt.Errorf("domain: user_data has no player_id: %w", ErrMalformedEvent)
	}
	return payload.UserProfile.Data.PlayerID, nil
}
