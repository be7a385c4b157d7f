package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
)

// Compile-time interface check.
var _ domain.Synthesizer = (*Synthesizer)(nil)

// SynthesizerOption configures the Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithVoice sets the synthesis voice.
func WithVoice(voice string) SynthesizerOption {
	return func(s *Synthesizer) { s.voice = voice }
}

// WithCustomization sets the voice customization identifier.
func WithCustomization(id string) SynthesizerOption {
	return func(s *Synthesizer) { s.customizationID = id }
}

// WithAccept sets the requested audio encoding.
func WithAccept(accept string) SynthesizerOption {
	return func(s *Synthesizer) { s.accept = accept }
}

// Synthesizer streams synthesized speech over a websocket. Each Synthesize
// call opens one connection, pushes the text, and drives the callback with
// the ordered chunk stream until the service terminates it.
type Synthesizer struct {
	endpoint        string
	apiKey          string
	voice           string
	customizationID string
	accept          string
	log             *logger.Logger
}

// NewSynthesizer creates a streaming synthesis client.
//   - endpoint: base URL of the synthesis resource (http(s) scheme is
//     rewritten to the websocket equivalent)
//   - apiKey:   the service API key
func NewSynthesizer(endpoint, apiKey string, log *logger.Logger, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		endpoint: endpoint,
		apiKey:   apiKey,
		voice:    DefaultVoice,
		accept:   AcceptWAV,
		log:      log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// streamURL builds the websocket URL with voice, customization, and
// encoding query parameters.
func (s *Synthesizer) streamURL() (string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("speech: invalid synthesis endpoint: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	default:
		u.Scheme = "wss"
	}

	q := u.Query()
	q.Set("voice", s.voice)
	q.Set("accept", s.accept)
	q.Set("sample_rate", strconv.Itoa(SampleRate))
	if s.customizationID != "" {
		q.Set("customization_id", s.customizationID)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// synthesizeMsg asks the service to synthesize the given text.
type synthesizeMsg struct {
	Action string `json:"action"`
	Text   string `json:"text"`
	Accept string `json:"accept"`
}

// controlMsg is a text frame from the service. Only the error field
// matters to us; timing frames are ignored.
type controlMsg struct {
	Error string `json:"error"`
}

// Synthesize streams speech for text into cb. Callback contract: OnConnected
// at most once before any audio, OnAudioChunk per binary frame in arrival
// order, then exactly one terminal OnClosed, with OnError (at most once)
// before it on the failure path. A sink may hold resources from the moment
// it is built, so the terminal signals fire even when the stream never
// opens. Blocks until the stream terminates.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, cb domain.SynthesisCallback) error {
	streamURL, err := s.streamURL()
	if err != nil {
		cb.OnError(err)
		cb.OnClosed()
		return err
	}

	header := http.Header{}
	if s.apiKey != "" {
		header.Set("Authorization", "Bearer "+s.apiKey)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, streamURL, header)
	if err != nil {
		err = fmt.Errorf("speech: dialing synthesis stream: %w", err)
		cb.OnError(err)
		cb.OnClosed()
		return err
	}
	defer conn.Close()

	cb.OnConnected()
	s.log.Debug("synthesis stream open (voice=%s, accept=%s, %d chars)", s.voice, s.accept, len(text))

	if err := conn.WriteJSON(synthesizeMsg{Action: "synthesize", Text: text, Accept: s.accept}); err != nil {
		err = fmt.Errorf("speech: sending synthesis request: %w", err)
		cb.OnError(err)
		cb.OnClosed()
		return err
	}

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				cb.OnClosed()
				return nil
			}
			wrapped := fmt.Errorf("speech: synthesis stream read: %v: %w", err, domain.ErrSynthesis)
			cb.OnError(wrapped)
			cb.OnClosed()
			return wrapped
		}

		switch msgType {
		case websocket.BinaryMessage:
			if err := cb.OnAudioChunk(msg); err != nil {
				wrapped := fmt.Errorf("speech: sink rejected chunk: %v: %w", err, domain.ErrSynthesis)
				cb.OnError(wrapped)
				cb.OnClosed()
				return wrapped
			}
		case websocket.TextMessage:
			var ctrl controlMsg
			if json.Unmarshal(msg, &ctrl) == nil && ctrl.Error != "" {
				wrapped := fmt.Errorf("speech: service error %q: %w", ctrl.Error, domain.ErrSynthesis)
				cb.OnError(wrapped)
				cb.OnClosed()
				return wrapped
			}
			// Timing and metadata frames carry nothing we act on.
		}
	}
}
