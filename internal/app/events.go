package app

import (
	"context"
	"time"

	"dnl-site-backend-go/internal/models"
)

//go:generate mockgen -source=events.go -destination=mocks/mock_events.go -package=mock_app

type EventType string

const (
	ReviewSubmitted    EventType = "review_submitted"
	BudgetRequested    EventType = "budget_requested"
	BudgetStatusChange EventType = "budget_status_changed"
)

// Event describes a write that has been committed.
type Event struct {
	Type          EventType             `json:"type"`
	At            time.Time             `json:"at"`
	Review        *models.Review        `json:"review,omitempty"`
	BudgetRequest *models.BudgetRequest `json:"budgetRequest,omitempty"`
}

// Hook runs after a write succeeded. Its error is logged and never changes
// the result of the write.
type Hook interface {
	Handle(ctx context.Context, event Event) error
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, event Event) error

func (f HookFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}
