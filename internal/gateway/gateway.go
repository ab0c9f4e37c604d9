// Package gateway is the thin accessor over the hosted row store, the object
// storage bucket and the admin authentication provider. It knows nothing about
// the site's entities: rows are loose column maps and callers own the mapping.
package gateway

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrNotFound           = errors.New("gateway: row not found")
	ErrInvalidIdentifier  = errors.New("gateway: invalid table or column name")
	ErrUnfilteredDelete   = errors.New("gateway: delete requires at least one filter")
	ErrInvalidCredentials = errors.New("gateway: invalid login credentials")
	ErrNoSession          = errors.New("gateway: no active session")
)

// Row is one table row keyed by column name.
type Row map[string]any

// Tables issues table-scoped queries. Every call reports its failure once;
// there is no retry.
type Tables interface {
	Select(ctx context.Context, table string, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, id string, values Row) error
	Upsert(ctx context.Context, table string, row Row) error
	DeleteByID(ctx context.Context, table string, id string) error
	Delete(ctx context.Context, table string, q Query) (int64, error)
}

// Storage is a single public bucket.
type Storage interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
	PublicURL(name string) string
}

// Session is an authenticated admin session.
type Session struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type AuthEventType string

const (
	SignedIn  AuthEventType = "SIGNED_IN"
	SignedOut AuthEventType = "SIGNED_OUT"
)

// AuthEvent is delivered to OnAuthStateChange subscribers. Active is the
// number of live sessions after the change.
type AuthEvent struct {
	Type    AuthEventType
	Session Session
	Active  int
}

// Auth is the session-based email/password provider.
type Auth interface {
	CurrentSession(ctx context.Context, token string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	OnAuthStateChange(fn func(AuthEvent)) (unsubscribe func())
	ActiveSessions() int
	SweepExpired(now time.Time) int
}
