package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dnl-site-backend-go/internal/models"
	"dnl-site-backend-go/internal/notify"
)

//go:generate mockgen -source=hooks.go -destination=mocks/mock_hooks.go -package=mock_app

// Notifier delivers one email and reports whether it was accepted.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) bool
}

// SettingsReader exposes the current settings.
type SettingsReader interface {
	Current() models.AppSettings
}

var ErrNotDelivered = errors.New("notification not delivered")

// EmailHook notifies the configured admin address about new reviews and
// budget requests.
type EmailHook struct {
	notifier Notifier
	settings SettingsReader
}

func NewEmailHook(notifier Notifier, settings SettingsReader) *EmailHook {
	return &EmailHook{notifier: notifier, settings: settings}
}

func (h *EmailHook) Handle(ctx context.Context, event Event) error {
	var msg notify.Message
	switch {
	case event.Type == BudgetRequested && event.BudgetRequest != nil:
		msg = BudgetRequestMessage(*event.BudgetRequest)
	case event.Type == ReviewSubmitted && event.Review != nil:
		msg = ReviewMessage(*event.Review)
	default:
		return nil
	}
	msg.To = h.settings.Current().WithDefaults().NotificationEmail
	if !h.notifier.Send(ctx, msg) {
		return fmt.Errorf("%s: %w", event.Type, ErrNotDelivered)
	}
	return nil
}

// BudgetRequestMessage builds the admin notification for a quote request.
// Replies go to the client.
func BudgetRequestMessage(b models.BudgetRequest) notify.Message {
	var body strings.Builder
	fmt.Fprintf(&body, "NOVO ORÇAMENTO\n\nCliente: %s\nTelemóvel: %s\nE-mail: %s\nObra: %s\n\nMensagem:\n%s",
		b.Name, b.Phone, b.Email, b.Type, b.Description)
	if len(b.Attachments) > 0 {
		body.WriteString("\n\nAnexos:")
		for _, link := range b.Attachments {
			body.WriteString("\n")
			body.WriteString(link)
		}
	}
	return notify.Message{
		Subject: "Novo Pedido: " + b.Name,
		Body:    body.String(),
		ReplyTo: b.Email,
	}
}

// ReviewMessage builds the admin notification for a review awaiting moderation.
func ReviewMessage(r models.Review) notify.Message {
	return notify.Message{
		Subject: "Nova Avaliação: " + r.ClientName,
		Body: fmt.Sprintf("NOVA AVALIAÇÃO (aguarda aprovação)\n\nCliente: %s\nClassificação: %d/5\nData: %s\n\nComentário:\n%s",
			r.ClientName, r.Rating, r.Date, r.Comment),
	}
}

// Broadcaster pushes a value to every connected admin client.
type Broadcaster interface {
	Broadcast(v any)
}

// BroadcastHook forwards events to the live admin feed.
type BroadcastHook struct {
	target Broadcaster
}

func NewBroadcastHook(target Broadcaster) *BroadcastHook {
	return &BroadcastHook{target: target}
}

func (h *BroadcastHook) Handle(_ context.Context, event Event) error {
	h.target.Broadcast(event)
	return nil
}
