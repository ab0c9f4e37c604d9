package httpapi

import (
	"context"
	"net/http"
	"strings"

	"dnl-site-backend-go/internal/gateway"
)

type contextKey string

const ctxSession contextKey = "session"

const (
	cookieName     = "dnl_admin"
	cookieTokenKey = "token"
)

// SessionLookup resolves a bearer token to a live admin session.
type SessionLookup interface {
	Session(ctx context.Context, token string) *gateway.Session
}

func WithAuth(sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "Sessão inválida.")
				return
			}
			session := sessions.Session(r.Context(), token)
			if session == nil {
				WriteError(w, http.StatusUnauthorized, "Sessão inválida.")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

func CurrentSession(r *http.Request) *gateway.Session {
	if value, ok := r.Context().Value(ctxSession).(*gateway.Session); ok {
		return value
	}
	return nil
}

// cookieToken returns the gateway token stored in the admin cookie.
func (s *Server) cookieToken(r *http.Request) string {
	session, _ := s.Cookies.Get(r, cookieName)
	token, _ := session.Values[cookieTokenKey].(string)
	return token
}

func (s *Server) saveCookieToken(w http.ResponseWriter, r *http.Request, token string) error {
	session, _ := s.Cookies.Get(r, cookieName)
	if token == "" {
		delete(session.Values, cookieTokenKey)
		session.Options.MaxAge = -1
	} else {
		session.Values[cookieTokenKey] = token
	}
	return session.Save(r, w)
}

// RequireAdminCookie sends visitors without a live cookie session back to
// the login form.
func (s *Server) RequireAdminCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.cookieToken(r)
		session := s.State.Session(r.Context(), token)
		if token == "" || session == nil {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), ctxSession, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
