package handlers

import (
	"net/http"

	"comprobantes/internal/logger"
	"comprobantes/internal/session"
	"comprobantes/internal/store"
	"comprobantes/internal/views"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SessionHandler upgrades page sessions and runs one controller per connection
type SessionHandler struct {
	store  store.Store
	views  *views.Views
	hub    *session.Hub
	margin float64
}

func NewSessionHandler(s store.Store, v *views.Views, hub *session.Hub, margin float64) *SessionHandler {
	return &SessionHandler{store: s, views: v, hub: hub, margin: margin}
}

func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("session")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	h.hub.Add(conn, id)
	defer func() {
		h.hub.Remove(conn)
		conn.Close()
	}()

	log.Debug().Str("session", id).Str("remote", r.RemoteAddr).Msg("session opened")
	sess := session.New(id, h.store, h.views, h.margin, log)
	if err := sess.Serve(conn); err != nil {
		log.Debug().Str("session", id).Err(err).Msg("session closed")
	}
}
