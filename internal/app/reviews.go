package app

import (
	"context"
	"errors"
	"strings"

	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/models"
)

// AddReview stores a review submitted by a client. The review always waits
// for moderation whatever the caller sent.
func (s *State) AddReview(ctx context.Context, r models.Review) (models.Review, error) {
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.Comment = strings.TrimSpace(r.Comment)
	if r.ClientName == "" {
		return models.Review{}, ErrBadRequest("Indique o seu nome.")
	}
	if r.Comment == "" {
		return models.Review{}, ErrBadRequest("Escreva um comentário.")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return models.Review{}, ErrBadRequest("A classificação deve estar entre 1 e 5.")
	}
	if r.Date == "" {
		r.Date = s.now().Format("2006-01-02")
	}
	r.ID = ""
	r.Approved = false

	row, err := s.tables.Insert(ctx, models.TableReviews, models.ReviewToRow(r))
	if err != nil {
		logger.Error("[app][reviews] create: %v", err)
		return models.Review{}, ErrFailed("Erro ao enviar avaliação.", err)
	}
	created, err := models.ReviewFromRow(row)
	if err != nil {
		return models.Review{}, ErrFailed("Erro ao enviar avaliação.", err)
	}
	s.runHooks(ctx, Event{Type: ReviewSubmitted, At: s.now(), Review: &created})
	_ = s.FetchReviews(ctx, s.IsAuthenticated())
	return created, nil
}

// ToggleReviewApproval flips the approval flag and returns the new value.
func (s *State) ToggleReviewApproval(ctx context.Context, id string) (bool, error) {
	current, err := s.review(ctx, id)
	if err != nil {
		return false, err
	}
	next := !current.Approved
	if err := s.tables.Update(ctx, models.TableReviews, id, gateway.Row{"approved": next}); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return false, ErrNotFound("Avaliação não encontrada.")
		}
		logger.Error("[app][reviews] toggle %s: %v", id, err)
		return false, ErrFailed("Erro ao atualizar avaliação.", err)
	}
	_ = s.FetchReviews(ctx, true)
	return next, nil
}

func (s *State) DeleteReview(ctx context.Context, id string) error {
	if err := s.tables.DeleteByID(ctx, models.TableReviews, id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrNotFound("Avaliação não encontrada.")
		}
		logger.Error("[app][reviews] delete %s: %v", id, err)
		return ErrFailed("Erro ao eliminar avaliação.", err)
	}
	_ = s.FetchReviews(ctx, true)
	return nil
}

func (s *State) review(ctx context.Context, id string) (models.Review, error) {
	s.mu.RLock()
	for _, r := range s.reviews {
		if r.ID == id {
			s.mu.RUnlock()
			return r, nil
		}
	}
	s.mu.RUnlock()

	rows, err := s.tables.Select(ctx, models.TableReviews, gateway.Where(gateway.Eq("id", id)).WithLimit(1))
	if err != nil {
		return models.Review{}, ErrFailed("Erro ao atualizar avaliação.", err)
	}
	if len(rows) == 0 {
		return models.Review{}, ErrNotFound("Avaliação não encontrada.")
	}
	r, err := models.ReviewFromRow(rows[0])
	if err != nil {
		return models.Review{}, ErrFailed("Erro ao atualizar avaliação.", err)
	}
	return r, nil
}
