package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/models"
	"dnl-site-backend-go/internal/notify"
)

const (
	testEmailSubject = "DNL - Teste de Sistema"
	testEmailBody    = "Se você recebeu isto, seu sistema de e-mail está funcionando!"
)

// LoginResult is what the login form shows.
type LoginResult struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Session *gateway.Session `json:"-"`
}

func (s *State) Login(ctx context.Context, email, password string) LoginResult {
	session, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			return LoginResult{Error: "Credenciais inválidas."}
		}
		logger.Error("[app][auth] sign in: %v", err)
		return LoginResult{Error: "Erro de sistema ao iniciar sessão."}
	}
	return LoginResult{Success: true, Session: &session}
}

func (s *State) Logout(ctx context.Context, token string) {
	if err := s.auth.SignOut(ctx, token); err != nil && !errors.Is(err, gateway.ErrNoSession) {
		logger.Warn("[app][auth] sign out: %v", err)
	}
}

// Session returns the admin session for token, or nil.
func (s *State) Session(ctx context.Context, token string) *gateway.Session {
	session, err := s.auth.CurrentSession(ctx, token)
	if err != nil {
		return nil
	}
	return session
}

// UpdateSettings saves the settings locally first and then remotely. It
// succeeds once the local copy is written. Empty logoURL or apiKey keep the
// stored values.
func (s *State) UpdateSettings(ctx context.Context, email, logoURL, apiKey string) (models.AppSettings, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return models.AppSettings{}, ErrBadRequest("Indique um e-mail de notificação válido.")
	}
	saved, synced, err := s.settings.Save(ctx, email, strings.TrimSpace(logoURL), strings.TrimSpace(apiKey))
	if err != nil {
		logger.Error("[app][settings] save: %v", err)
		return models.AppSettings{}, ErrFailed("Erro ao guardar configurações.", err)
	}
	if !synced {
		logger.Warn("[app][settings] saved on this server only; remote copy will be retried")
	}
	return saved, nil
}

// SendTestEmail sends the diagnostic message to address.
func (s *State) SendTestEmail(ctx context.Context, address string) bool {
	return s.notifier.Send(ctx, notify.Message{
		Subject: testEmailSubject,
		Body:    testEmailBody,
		ReplyTo: address,
		To:      address,
	})
}

func (s *State) GenerateDescription(ctx context.Context, title, projectType string) string {
	return s.generator.Generate(ctx, title, projectType)
}
