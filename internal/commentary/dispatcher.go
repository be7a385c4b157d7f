package commentary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
	"fairwaycast/internal/shot"
	"fairwaycast/internal/speech"
)

// Transport is the message channel for one connection. The dispatcher
// reads one inbound event and writes one text acknowledgement per message.
type Transport interface {
	ReadMessage() ([]byte, error)
	WriteMessage(text string) error
}

// The pipelines as the dispatcher sees them.
type shotRunner interface {
	Run(ctx context.Context, profile domain.ShotProfile) error
}

type profileRunner interface {
	Spawn(profile domain.PlayerProfile)
}

// defaultStartDelay is how long a ready event waits before the
// introduction plays.
const defaultStartDelay = 10 * time.Second

// DispatcherOption configures the dispatcher.
type DispatcherOption func(*Dispatcher)

// WithStartDelay sets the wait between a ready event and introduction
// playback.
func WithStartDelay(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) { dp.startDelay = d }
}

// Dispatcher is the per-connection event loop. It is sequential by
// construction: one event's handling, including the shot pipeline's full
// timing wait, completes before the next message is read. That guarantees
// at most one foreground narration at a time and keeps narration order
// equal to event order. Only profile generation escapes the loop, as an
// isolated worker.
type Dispatcher struct {
	id         string
	conn       Transport
	shots      shotRunner
	profiles   profileRunner
	player     domain.AudioPlayer
	audioDir   string
	voice      string
	startDelay time.Duration
	log        *logger.Logger
}

// NewDispatcher creates the event loop for one connection.
func NewDispatcher(conn Transport, shots *ShotPipeline, profiles *ProfilePipeline,
	player domain.AudioPlayer, audioDir, voice string, log *logger.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		id:         uuid.NewString(),
		conn:       conn,
		shots:      shots,
		profiles:   profiles,
		player:     player,
		audioDir:   audioDir,
		voice:      voice,
		startDelay: defaultStartDelay,
		log:        log,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ID returns the connection identifier used in logs.
func (d *Dispatcher) ID() string { return d.id }

// Run reads and handles events until the transport fails. Narration
// failures are contained per event; the returned error is always a
// transport-level one.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Info("connection %s: dispatch loop started", d.id)
	for {
		data, err := d.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("commentary: connection %s transport: %w", d.id, err)
		}

		ev, err := domain.DecodeEvent(data)
		if err != nil {
			d.log.Warn("connection %s: %v", d.id, err)
			d.ack("unrecognized type")
			continue
		}

		d.handle(ctx, ev)
	}
}

// handle routes one event. Every branch ends in an acknowledgement.
func (d *Dispatcher) handle(ctx context.Context, ev domain.InboundEvent) {
	d.log.Debug("connection %s: handling %s", d.id, ev.Type)

	switch {
	case domain.NoProcessingRequired(ev.Type):
		d.ack(ev.Type + " response")

	case ev.Type == domain.EventUserProfile:
		profile, err := domain.ParsePlayerProfile(ev)
		if err != nil {
			d.log.Warn("connection %s: skipping introduction: %v", d.id, err)
			d.ack("msg processed")
			return
		}
		d.profiles.Spawn(profile)
		d.ack(fmt.Sprintf("player commentary generating for %s", profile.ID))

	case ev.Type == domain.EventUserReady:
		d.handleReady(ev)
		d.ack("msg processed")

	case ev.Type == domain.EventShotComplete:
		profile, err := shot.ExtractProfile(ev)
		if err != nil {
			d.log.Warn("connection %s: skipping shot commentary: %v", d.id, err)
		} else if err := d.shots.Run(ctx, profile); err != nil {
			d.log.Error("connection %s: shot commentary: %v", d.id, err)
		}
		d.ack("msg processed")

	default:
		d.log.Warn("connection %s: unrecognized event type %q", d.id, ev.Type)
		d.ack("unrecognized type")
	}
}

// handleReady plays the pre-generated introduction for the player, after
// the configured start delay. A missing artifact means background
// generation did not finish in time; log and move on, silence is the
// user-visible failure mode.
func (d *Dispatcher) handleReady(ev domain.InboundEvent) {
	playerID, err := domain.ParseReadyPlayerID(ev)
	if err != nil {
		d.log.Warn("connection %s: skipping introduction playback: %v", d.id, err)
		return
	}

	d.log.Debug("connection %s: waiting %s before playing introduction", d.id, d.startDelay)
	time.Sleep(d.startDelay)

	path := speech.ProfileAudioPath(d.audioDir, d.voice, playerID)
	if err := d.player.PlayFile(path); err != nil {
		if errors.Is(err, domain.ErrPlaybackMissing) {
			d.log.Warn("connection %s: introduction not ready for player %s", d.id, playerID)
		} else {
			d.log.Error("connection %s: introduction playback: %v", d.id, err)
		}
	}
}

func (d *Dispatcher) ack(msg string) {
	if err := d.conn.WriteMessage(msg); err != nil {
		d.log.Warn("connection %s: ack failed: %v", d.id, err)
	}
}
