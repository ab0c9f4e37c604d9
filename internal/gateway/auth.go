package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"dnl-site-backend-go/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

const AdminUsersTable = "admin_users"

// PasswordAuth is the email/password provider backed by the admin_users
// table. Issued tokens are tracked in process so that sign-out and expiry
// revoke them; a restart signs every admin out.
type PasswordAuth struct {
	tables Tables
	tokens Tokens
	now    func() time.Time

	mu        sync.Mutex
	sessions  map[string]Session
	listeners map[int]func(AuthEvent)
	nextID    int
}

var _ Auth = (*PasswordAuth)(nil)

func NewPasswordAuth(tables Tables, tokens Tokens) *PasswordAuth {
	return &PasswordAuth{
		tables:    tables,
		tokens:    tokens,
		now:       func() time.Time { return time.Now().UTC() },
		sessions:  map[string]Session{},
		listeners: map[int]func(AuthEvent){},
	}
}

// CreateUser stores a new admin with an argon2id password hash.
func (a *PasswordAuth) CreateUser(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("gateway: invalid email %q", email)
	}
	hash, err := a.tokens.HashPassword(password)
	if err != nil {
		return "", err
	}
	row, err := a.tables.Insert(ctx, AdminUsersTable, Row{
		"email":         email,
		"password_hash": hash,
	})
	if err != nil {
		return "", err
	}
	id, _ := row["id"].(string)
	return id, nil
}

func (a *PasswordAuth) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	rows, err := a.tables.Select(ctx, AdminUsersTable, Where(Eq("email", email)).WithLimit(1))
	if err != nil {
		return Session{}, err
	}
	if len(rows) == 0 {
		return Session{}, ErrInvalidCredentials
	}
	hash, _ := rows[0]["password_hash"].(string)
	if !a.tokens.VerifyPassword(password, hash) {
		return Session{}, ErrInvalidCredentials
	}
	userID := fmt.Sprint(rows[0]["id"])
	now := a.now()
	token, jti, exp, err := a.tokens.Issue(userID, email, now)
	if err != nil {
		return Session{}, err
	}
	session := Session{UserID: userID, Email: email, Token: token, ExpiresAt: exp}

	if err := a.tables.Update(ctx, AdminUsersTable, userID, Row{"last_login_at": now}); err != nil {
		logger.Warn("[auth][signin] last_login_at not updated for %s: %v", userID, err)
	}

	a.mu.Lock()
	a.sessions[jti] = session
	event := AuthEvent{Type: SignedIn, Session: session, Active: len(a.sessions)}
	listeners := a.snapshotListeners()
	a.mu.Unlock()

	notify(listeners, event)
	return session, nil
}

func (a *PasswordAuth) CurrentSession(_ context.Context, token string) (*Session, error) {
	jti, err := a.tokenID(token)
	if err != nil {
		return nil, ErrNoSession
	}
	a.mu.Lock()
	session, ok := a.sessions[jti]
	if !ok {
		a.mu.Unlock()
		return nil, ErrNoSession
	}
	if session.Expired(a.now()) {
		delete(a.sessions, jti)
		event := AuthEvent{Type: SignedOut, Session: session, Active: len(a.sessions)}
		listeners := a.snapshotListeners()
		a.mu.Unlock()
		notify(listeners, event)
		return nil, ErrNoSession
	}
	a.mu.Unlock()
	return &session, nil
}

func (a *PasswordAuth) SignOut(_ context.Context, token string) error {
	jti, err := a.tokenID(token)
	if err != nil {
		return ErrNoSession
	}
	a.mu.Lock()
	session, ok := a.sessions[jti]
	if !ok {
		a.mu.Unlock()
		return ErrNoSession
	}
	delete(a.sessions, jti)
	event := AuthEvent{Type: SignedOut, Session: session, Active: len(a.sessions)}
	listeners := a.snapshotListeners()
	a.mu.Unlock()

	notify(listeners, event)
	return nil
}

func (a *PasswordAuth) OnAuthStateChange(fn func(AuthEvent)) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.listeners, id)
			a.mu.Unlock()
		})
	}
}

func (a *PasswordAuth) ActiveSessions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}

// SweepExpired drops sessions past their expiry and emits one SignedOut
// event per dropped session.
func (a *PasswordAuth) SweepExpired(now time.Time) int {
	a.mu.Lock()
	var events []AuthEvent
	for jti, session := range a.sessions {
		if session.Expired(now) {
			delete(a.sessions, jti)
			events = append(events, AuthEvent{Type: SignedOut, Session: session})
		}
	}
	for i := range events {
		events[i].Active = len(a.sessions)
	}
	listeners := a.snapshotListeners()
	a.mu.Unlock()

	for _, event := range events {
		notify(listeners, event)
	}
	return len(events)
}

// tokenID returns the jti of a correctly signed token. Expired tokens are
// accepted here so that their session can still be found and removed.
func (a *PasswordAuth) tokenID(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoSession
	}
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return a.expiredTokenID(token, err)
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return "", ErrNoSession
	}
	return jti, nil
}

func (a *PasswordAuth) expiredTokenID(token string, parseErr error) (string, error) {
	if !errors.Is(parseErr, jwt.ErrTokenExpired) {
		return "", parseErr
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for jti, session := range a.sessions {
		if session.Token == token {
			return jti, nil
		}
	}
	return "", ErrNoSession
}

func (a *PasswordAuth) snapshotListeners() []func(AuthEvent) {
	out := make([]func(AuthEvent), 0, len(a.listeners))
	for _, fn := range a.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(AuthEvent), event AuthEvent) {
	for _, fn := range listeners {
		fn(event)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
