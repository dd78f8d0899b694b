// Package ws provides the WebSocket transport for relay sessions.
package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Muskan2320/Realtime-AI-backend/internal/config"
	"github.com/Muskan2320/Realtime-AI-backend/internal/llm"
	"github.com/Muskan2320/Realtime-AI-backend/internal/relay"
	"github.com/Muskan2320/Realtime-AI-backend/internal/store"
)

// Server handles WebSocket session connections.
type Server struct {
	cfg      *config.Config
	store    store.Store
	gen      llm.Generator
	registry *relay.Registry
	schedule relay.ScheduleFunc
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(cfg *config.Config, st store.Store, gen llm.Generator, registry *relay.Registry, schedule relay.ScheduleFunc) *Server {
	return &Server{
		cfg:      cfg,
		store:    st,
		gen:      gen,
		registry: registry,
		schedule: schedule,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for MVP
				return true
			},
		},
	}
}

// HandleSession upgrades the connection and runs the relay loop until the
// client disconnects. The handler returns as soon as the session terminates;
// summarization continues in the background.
func (s *Server) HandleSession(c echo.Context) error {
	wsConn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("Failed to upgrade WebSocket: %v", err)
		return err
	}

	conn := newConn(wsConn, s.cfg)
	defer conn.Close()

	sess := relay.NewSession(conn, s.store, s.gen, s.schedule)
	sess.UserID = c.QueryParam("user_id")

	s.registry.Add(sess)
	defer s.registry.Remove(sess)

	log.Printf("Session %s connected", sess.ID)

	if err := sess.Run(c.Request().Context()); err != nil {
		log.Printf("Session %s aborted: %v", sess.ID, err)
		return nil
	}

	log.Printf("Session %s disconnected", sess.ID)
	return nil
}

// HandleHealth reports service health and the active session count.
func (s *Server) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"sessions": s.registry.Count(),
	})
}
