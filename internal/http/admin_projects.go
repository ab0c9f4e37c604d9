package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dnl-site-backend-go/internal/models"

	"github.com/go-chi/chi/v5"
)

var errInvalidProjectForm = errors.New("invalid project form")

type DescribeRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

type DescribeResponse struct {
	Description string `json:"description"`
}

// projectFromForm reads the project fields of a multipart or urlencoded
// form. "galleryItems" carries the kept gallery as JSON; when it is absent
// the stored gallery is left alone on update.
func projectFromForm(r *http.Request) (models.Project, error) {
	p := models.Project{
		ID:             strings.TrimSpace(r.FormValue("id")),
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		Type:           r.FormValue("type"),
		Status:         models.ProjectStatus(r.FormValue("status")),
		ImageURL:       strings.TrimSpace(r.FormValue("imageUrl")),
		VideoURL:       strings.TrimSpace(r.FormValue("videoUrl")),
		StartDate:      strings.TrimSpace(r.FormValue("startDate")),
		CompletionDate: strings.TrimSpace(r.FormValue("completionDate")),
	}
	if raw := strings.TrimSpace(r.FormValue("progress")); raw != "" {
		progress, err := strconv.Atoi(raw)
		if err != nil {
			return models.Project{}, errInvalidProjectForm
		}
		p.Progress = progress
	}
	if _, ok := r.Form["galleryItems"]; ok {
		p.Gallery = []models.GalleryItem{}
		if raw := strings.TrimSpace(r.FormValue("galleryItems")); raw != "" {
			if err := json.Unmarshal([]byte(raw), &p.Gallery); err != nil {
				return models.Project{}, errInvalidProjectForm
			}
		}
	}
	if p.Type == "" {
		p.Type = models.ProjectTypes[0]
	}
	return p, nil
}

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, ProjectsResponse{Items: s.State.Projects()})
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		WriteError(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}
	p, err := projectFromForm(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Dados do projeto inválidos.")
		return
	}
	created, err := s.State.AddProject(r.Context(), p, formFile(r, "image"), formFiles(r, "gallery"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		WriteError(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}
	p, err := projectFromForm(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Dados do projeto inválidos.")
		return
	}
	p.ID = chi.URLParam(r, "projectId")
	updated, err := s.State.UpdateProject(r.Context(), p, formFile(r, "image"), formFiles(r, "gallery"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.State.DeleteProject(r.Context(), chi.URLParam(r, "projectId")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) DescribeProject(w http.ResponseWriter, r *http.Request) {
	var req DescribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		WriteError(w, http.StatusBadRequest, "Indique o título do projeto.")
		return
	}
	WriteJSON(w, http.StatusOK, DescribeResponse{
		Description: s.State.GenerateDescription(r.Context(), req.Title, req.Type),
	})
}
