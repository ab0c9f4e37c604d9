package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/models"
	"dnl-site-backend-go/internal/report"

	"github.com/go-chi/chi/v5"
)

type BudgetRequestsResponse struct {
	Items []models.BudgetRequest `json:"items"`
}

type StatusRequest struct {
	Status models.BudgetStatus `json:"status"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

func (s *Server) ListBudgetRequests(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, BudgetRequestsResponse{Items: s.State.BudgetRequests()})
}

func (s *Server) UpdateBudgetStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}
	if err := s.State.UpdateBudgetStatus(r.Context(), chi.URLParam(r, "requestId"), req.Status); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) DeleteBudgetRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.State.DeleteBudgetRequest(r.Context(), chi.URLParam(r, "requestId")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) DeleteAllBudgetRequests(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.State.DeleteAllBudgetRequests(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, DeletedResponse{Deleted: deleted})
}

// ExportBudgetRequests streams the loaded requests as a spreadsheet.
func (s *Server) ExportBudgetRequests(w http.ResponseWriter, r *http.Request) {
	now := s.Now()
	f, err := report.BudgetRequestsXLSX(s.State.BudgetRequests(), now)
	if err != nil {
		logger.Error("[http][export] build workbook: %v", err)
		WriteError(w, http.StatusInternalServerError, "Erro ao gerar ficheiro.")
		return
	}
	defer f.Close()
	filename := fmt.Sprintf("pedidos-orcamento-%s.xlsx", now.Format("20060102-1504"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		logger.Warn("[http][export] write workbook: %v", err)
	}
}
