package gateway

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestAuth(t *testing.T) (*PasswordAuth, *MemoryTables) {
	t.Helper()
	tables := NewMemoryTables()
	auth := NewPasswordAuth(tables, Tokens{Secret: []byte("test-secret"), Issuer: "dnl-site", TTL: time.Hour})
	if _, err := auth.CreateUser(context.Background(), "Admin@DNL.pt", "segredo123"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return auth, tables
}

func TestTokens_PasswordHashing(t *testing.T) {
	tokens := Tokens{}
	hash, err := tokens.HashPassword("segredo")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !tokens.VerifyPassword("segredo", hash) {
		t.Fatalf("expected password to verify")
	}
	if tokens.VerifyPassword("outro", hash) {
		t.Fatalf("expected wrong password to fail")
	}
	if tokens.VerifyPassword("segredo", "not-a-hash") {
		t.Fatalf("expected garbage hash to fail")
	}
}

func TestPasswordAuth_SignInOut(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	var events []AuthEvent
	unsubscribe := auth.OnAuthStateChange(func(e AuthEvent) { events = append(events, e) })
	defer unsubscribe()

	t.Run("wrong password", func(t *testing.T) {
		if _, err := auth.SignIn(ctx, "admin@dnl.pt", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := auth.SignIn(ctx, "ghost@dnl.pt", "segredo123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	session, err := auth.SignIn(ctx, " ADMIN@dnl.pt ", "segredo123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Email != "admin@dnl.pt" || session.Token == "" {
		t.Fatalf("unexpected session %+v", session)
	}
	current, err := auth.CurrentSession(ctx, session.Token)
	if err != nil || current.UserID != session.UserID {
		t.Fatalf("expected current session, got %v (%v)", current, err)
	}
	if auth.ActiveSessions() != 1 {
		t.Fatalf("expected 1 active session")
	}

	if err := auth.SignOut(ctx, session.Token); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := auth.CurrentSession(ctx, session.Token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after sign out, got %v", err)
	}
	if err := auth.SignOut(ctx, session.Token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession on second sign out, got %v", err)
	}

	if len(events) != 2 || events[0].Type != SignedIn || events[0].Active != 1 || events[1].Type != SignedOut || events[1].Active != 0 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestPasswordAuth_SweepExpired(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)
	session, err := auth.SignIn(ctx, "admin@dnl.pt", "segredo123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var signedOut int
	auth.OnAuthStateChange(func(e AuthEvent) {
		if e.Type == SignedOut {
			signedOut++
		}
	})

	if n := auth.SweepExpired(time.Now()); n != 0 {
		t.Fatalf("expected nothing swept, got %d", n)
	}
	if n := auth.SweepExpired(session.ExpiresAt.Add(time.Second)); n != 1 {
		t.Fatalf("expected one session swept, got %d", n)
	}
	if signedOut != 1 || auth.ActiveSessions() != 0 {
		t.Fatalf("expected one sign-out event and no sessions, got %d/%d", signedOut, auth.ActiveSessions())
	}
}

func TestPasswordAuth_Unsubscribe(t *testing.T) {
	auth, _ := newTestAuth(t)
	calls := 0
	unsubscribe := auth.OnAuthStateChange(func(AuthEvent) { calls++ })
	unsubscribe()
	unsubscribe()
	if _, err := auth.SignIn(context.Background(), "admin@dnl.pt", "segredo123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no callbacks after unsubscribe, got %d", calls)
	}
}
