package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Email     string     `json:"email,omitempty"`
}

type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Email         string     `json:"email,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		WriteJSON(w, http.StatusUnauthorized, LoginResponse{Error: "Credenciais inválidas."})
		return
	}
	result := s.State.Login(r.Context(), req.Email, req.Password)
	if !result.Success {
		WriteJSON(w, http.StatusUnauthorized, LoginResponse{Error: result.Error})
		return
	}
	session := result.Session
	WriteJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		Token:     session.Token,
		ExpiresAt: &session.ExpiresAt,
		Email:     session.Email,
	})
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		s.State.Logout(r.Context(), token)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) SessionInfo(w http.ResponseWriter, r *http.Request) {
	session := s.State.Session(r.Context(), bearerToken(r))
	if session == nil {
		WriteJSON(w, http.StatusOK, SessionResponse{})
		return
	}
	WriteJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		Email:         session.Email,
		ExpiresAt:     &session.ExpiresAt,
	})
}
