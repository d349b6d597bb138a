package session

import (
	"sync"
	"time"

	"comprobantes/internal/metrics"

	"github.com/gorilla/websocket"
)

// Hub tracks open page sessions so they can be counted and closed on shutdown.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

// Add registers conn under session id
func (h *Hub) Add(conn *websocket.Conn, id string) {
	h.mu.Lock()
	h.clients[conn] = id
	h.mu.Unlock()
	metrics.SessionsActive.Inc()
}

// Remove forgets conn
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		metrics.SessionsActive.Dec()
	}
}

// Count returns the number of open sessions
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll sends a going-away close frame to every session
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}
}
