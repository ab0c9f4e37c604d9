// Package live fans committed site events out to the admin panels that are
// connected over websocket.
package live

import (
	"context"
	"sync"
	"time"

	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/logger"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// Hub keeps each socket together with the session token that opened it.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
	ch      chan any
}

func NewHub() *Hub {
	return &Hub{
		clients: map[*websocket.Conn]string{},
		ch:      make(chan any, 16),
	}
}

// Run writes queued messages to every client until ctx is done. A client
// whose write fails is dropped.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case msg := <-h.ch:
			h.send(msg)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Broadcast queues msg. When the queue is full the message is dropped.
func (h *Hub) Broadcast(msg any) {
	select {
	case h.ch <- msg:
	default:
		logger.Warn("[live][broadcast] queue full, event dropped")
	}
}

func (h *Hub) Add(conn *websocket.Conn, token string) {
	h.mu.Lock()
	h.clients[conn] = token
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// CloseSession closes every socket opened with token and returns how many
// were closed.
func (h *Hub) CloseSession(token string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	closed := 0
	for conn, owner := range h.clients {
		if owner != token {
			continue
		}
		delete(h.clients, conn)
		_ = conn.Close()
		closed++
	}
	return closed
}

// HandleAuthEvent is subscribed to the auth provider. Sign-out and session
// expiry both arrive as SignedOut.
func (h *Hub) HandleAuthEvent(event gateway.AuthEvent) {
	if event.Type != gateway.SignedOut || event.Session.Token == "" {
		return
	}
	if n := h.CloseSession(event.Session.Token); n > 0 {
		logger.Info("[live][auth] closed %d socket(s) of %s", n, event.Session.Email)
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) send(msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			logger.Warn("[live][send] dropping client %s: %v", conn.RemoteAddr(), err)
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
