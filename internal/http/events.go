package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// EventsSocket streams committed admin events. The session token comes in
// the "token" query parameter since browsers cannot set headers on sockets.
func (s *Server) EventsSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" || s.State.Session(r.Context(), token) == nil {
		WriteError(w, http.StatusUnauthorized, "Sessão inválida.")
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.Hub.Add(conn, token)
	defer func() {
		s.Hub.Remove(conn)
		_ = conn.Close()
	}()
	// A sign-out between the first check and Add would not reach this socket.
	if s.State.Session(r.Context(), token) == nil {
		return
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
