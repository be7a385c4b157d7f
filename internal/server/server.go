// Package server exposes the commentary engine over a websocket endpoint.
// Each accepted connection gets its own sequential dispatcher.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"fairwaycast/internal/commentary"
	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
)

// Deps are the per-connection pipeline dependencies the server wires into
// every dispatcher.
type Deps struct {
	Shots      *commentary.ShotPipeline
	Profiles   *commentary.ProfilePipeline
	Player     domain.AudioPlayer
	AudioDir   string
	Voice      string
	Dispatcher []commentary.DispatcherOption
}

// Server upgrades HTTP requests to commentary connections.
type Server struct {
	upgrader websocket.Upgrader
	deps     Deps
	log      *logger.Logger
}

// New creates the websocket server.
func New(deps Deps, log *logger.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			// The simulator connects from its own host; origin checks
			// do not apply to this deployment.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		deps: deps,
		log:  log,
	}
}

// Handler returns the HTTP handler for the commentary endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/commentary", s.handleCommentary)
	return mux
}

func (s *Server) handleCommentary(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("server: upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	d := commentary.NewDispatcher(
		&wsTransport{conn: conn},
		s.deps.Shots,
		s.deps.Profiles,
		s.deps.Player,
		s.deps.AudioDir,
		s.deps.Voice,
		s.log,
		s.deps.Dispatcher...,
	)

	s.log.Info("server: connection %s from %s", d.ID(), r.RemoteAddr)
	if err := d.Run(r.Context()); err != nil {
		// Normal closes land here too; they are the expected way a
		// session ends.
		s.log.Info("server: connection %s closed: %v", d.ID(), err)
	}
}

// wsTransport adapts a gorilla connection to the dispatcher's transport.
type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) ReadMessage() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) WriteMessage(text string) error {
	return t.conn.WriteMessage(websocket.TextMessage, []byte(text))
}
