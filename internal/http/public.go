package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"dnl-site-backend-go/internal/models"
)

type ProjectsResponse struct {
	Items []models.Project `json:"items"`
}

type ReviewsResponse struct {
	Items []models.Review `json:"items"`
}

type ReviewRequest struct {
	ClientName string `json:"clientName"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (s *Server) PublicProjects(w http.ResponseWriter, r *http.Request) {
	status := models.NormalizeStatus(r.URL.Query().Get("status"))
	filter := strings.TrimSpace(r.URL.Query().Get("status")) != ""
	items := []models.Project{}
	for _, p := range s.State.Projects() {
		if !filter || p.Status == status {
			items = append(items, p)
		}
	}
	WriteJSON(w, http.StatusOK, ProjectsResponse{Items: items})
}

func (s *Server) PublicReviews(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, ReviewsResponse{Items: s.State.Reviews(false)})
}

// PublicSettings never exposes the email API key.
func (s *Server) PublicSettings(w http.ResponseWriter, r *http.Request) {
	settings := s.State.Settings()
	settings.EmailAPIKey = ""
	WriteJSON(w, http.StatusOK, settings)
}

func (s *Server) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}
	created, err := s.State.AddReview(r.Context(), models.Review{
		ClientName: req.ClientName,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// SubmitBudgetRequest takes a multipart form; files go in "attachments".
func (s *Server) SubmitBudgetRequest(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		WriteError(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}
	created, err := s.State.CreateBudgetRequest(r.Context(), budgetRequestFromForm(r), formFiles(r, "attachments"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func budgetRequestFromForm(r *http.Request) models.BudgetRequest {
	return models.BudgetRequest{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		Type:        r.FormValue("type"),
		Description: r.FormValue("description"),
	}
}
