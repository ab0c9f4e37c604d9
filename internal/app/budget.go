package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/models"

	"golang.org/x/sync/errgroup"
)

// allRowsSentinel never matches a real id, so "id <> sentinel" selects every row.
const allRowsSentinel = "000"

// CreateBudgetRequest uploads the attachments concurrently, stores the request
// as pending and notifies the admin. The stored list is only refreshed when
// an admin is signed in.
func (s *State) CreateBudgetRequest(ctx context.Context, form models.BudgetRequest, attachments []Upload) (models.BudgetRequest, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	if form.Name == "" {
		return models.BudgetRequest{}, ErrBadRequest("Indique o seu nome.")
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		return models.BudgetRequest{}, ErrBadRequest("Indique um e-mail válido.")
	}

	links := make([]string, len(attachments))
	var g errgroup.Group
	for i, f := range attachments {
		g.Go(func() error {
			if url, ok := s.UploadImage(ctx, f); ok {
				links[i] = url
			}
			return nil
		})
	}
	_ = g.Wait()
	form.Attachments = append([]string{}, form.Attachments...)
	for _, link := range links {
		if link != "" {
			form.Attachments = append(form.Attachments, link)
		}
	}
	form.ID = ""
	form.Status = models.BudgetPending

	row, err := s.tables.Insert(ctx, models.TableBudgetRequests, models.BudgetRequestToRow(form))
	if err != nil {
		logger.Error("[app][budget] create for %s: %v", form.Email, err)
		return models.BudgetRequest{}, ErrFailed("Erro ao enviar pedido de orçamento.", err)
	}
	created, err := models.BudgetRequestFromRow(row)
	if err != nil {
		return models.BudgetRequest{}, ErrFailed("Erro ao enviar pedido de orçamento.", err)
	}
	s.runHooks(ctx, Event{Type: BudgetRequested, At: s.now(), BudgetRequest: &created})
	if s.IsAuthenticated() {
		_ = s.FetchBudgetRequests(ctx)
	}
	return created, nil
}

// UpdateBudgetStatus moves a request from pendente to contactado. Setting the
// current status again is accepted; going back to pendente is not.
func (s *State) UpdateBudgetStatus(ctx context.Context, id string, status models.BudgetStatus) error {
	if status != models.BudgetPending && status != models.BudgetContacted {
		return ErrBadRequest("Estado inválido.")
	}
	current, err := s.budgetRequest(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == status {
		return nil
	}
	if status == models.BudgetPending {
		return ErrBadRequest("Um pedido contactado não pode voltar a pendente.")
	}
	if err := s.tables.Update(ctx, models.TableBudgetRequests, id, gateway.Row{"status": string(status)}); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrNotFound("Pedido não encontrado.")
		}
		logger.Error("[app][budget] status %s: %v", id, err)
		return ErrFailed("Erro ao atualizar pedido.", err)
	}
	current.Status = status
	s.runHooks(ctx, Event{Type: BudgetStatusChange, At: s.now(), BudgetRequest: &current})
	_ = s.FetchBudgetRequests(ctx)
	return nil
}

func (s *State) DeleteBudgetRequest(ctx context.Context, id string) error {
	if err := s.tables.DeleteByID(ctx, models.TableBudgetRequests, id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrNotFound("Pedido não encontrado.")
		}
		logger.Error("[app][budget] delete %s: %v", id, err)
		return ErrFailed("Erro ao eliminar pedido.", err)
	}
	_ = s.FetchBudgetRequests(ctx)
	return nil
}

// DeleteAllBudgetRequests removes every stored request and returns how many
// were deleted.
func (s *State) DeleteAllBudgetRequests(ctx context.Context) (int64, error) {
	n, err := s.tables.Delete(ctx, models.TableBudgetRequests, gateway.Where(gateway.Neq("id", allRowsSentinel)))
	if err != nil {
		logger.Error("[app][budget] delete all: %v", err)
		return 0, ErrFailed("Erro ao eliminar pedidos.", err)
	}
	s.mu.Lock()
	s.budgetRequests = []models.BudgetRequest{}
	s.mu.Unlock()
	return n, nil
}

func (s *State) budgetRequest(ctx context.Context, id string) (models.BudgetRequest, error) {
	s.mu.RLock()
	for _, b := range s.budgetRequests {
		if b.ID == id {
			s.mu.RUnlock()
			return b, nil
		}
	}
	s.mu.RUnlock()

	rows, err := s.tables.Select(ctx, models.TableBudgetRequests, gateway.Where(gateway.Eq("id", id)).WithLimit(1))
	if err != nil {
		return models.BudgetRequest{}, ErrFailed("Erro ao atualizar pedido.", err)
	}
	if len(rows) == 0 {
		return models.BudgetRequest{}, ErrNotFound("Pedido não encontrado.")
	}
	b, err := models.BudgetRequestFromRow(rows[0])
	if err != nil {
		return models.BudgetRequest{}, ErrFailed("Erro ao atualizar pedido.", err)
	}
	return b, nil
}
