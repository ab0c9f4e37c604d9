package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ToggleResponse struct {
	Approved bool `json:"approved"`
}

func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, ReviewsResponse{Items: s.State.Reviews(true)})
}

func (s *Server) ToggleReview(w http.ResponseWriter, r *http.Request) {
	approved, err := s.State.ToggleReviewApproval(r.Context(), chi.URLParam(r, "reviewId"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ToggleResponse{Approved: approved})
}

func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.State.DeleteReview(r.Context(), chi.URLParam(r, "reviewId")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
