package app

import (
	"context"
	"errors"
	"strings"

	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/models"
)

func validateProject(p *models.Project) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return ErrBadRequest("O título do projeto é obrigatório.")
	}
	p.Status = models.NormalizeStatus(string(p.Status))
	if p.Status != models.StatusInProgress && p.Status != models.StatusCompleted {
		return ErrBadRequest("Estado do projeto inválido.")
	}
	if p.Progress < 0 || p.Progress > 100 {
		return ErrBadRequest("O progresso deve estar entre 0 e 100.")
	}
	return nil
}

// uploadGallery stores the files one after another so the gallery keeps the
// order they were chosen in. Failed files are left out.
func (s *State) uploadGallery(ctx context.Context, gallery []models.GalleryItem, files []Upload) []models.GalleryItem {
	out := append([]models.GalleryItem{}, gallery...)
	for _, f := range files {
		if url, ok := s.UploadImage(ctx, f); ok {
			out = append(out, models.GalleryItem{URL: url})
		}
	}
	return out
}

// AddProject uploads the optional main image and gallery files, then stores
// the project.
func (s *State) AddProject(ctx context.Context, p models.Project, mainImage *Upload, gallery []Upload) (models.Project, error) {
	if err := validateProject(&p); err != nil {
		return models.Project{}, err
	}
	p.ID = ""
	if mainImage != nil {
		if url, ok := s.UploadImage(ctx, *mainImage); ok {
			p.ImageURL = url
		}
	}
	p.Gallery = s.uploadGallery(ctx, p.Gallery, gallery)

	row, err := s.tables.Insert(ctx, models.TableProjects, models.ProjectToRow(p))
	if err != nil {
		logger.Error("[app][projects] create %q: %v", p.Title, err)
		return models.Project{}, ErrFailed("Erro ao criar projeto.", err)
	}
	created, err := models.ProjectFromRow(row)
	if err != nil {
		return models.Project{}, ErrFailed("Erro ao criar projeto.", err)
	}
	_ = s.FetchProjects(ctx)
	return created, nil
}

// UpdateProject stores the edited project. Without a new main image or an
// explicit image URL the stored image is kept; new gallery files are appended.
func (s *State) UpdateProject(ctx context.Context, p models.Project, mainImage *Upload, gallery []Upload) (models.Project, error) {
	if p.ID == "" {
		return models.Project{}, ErrBadRequest("Projeto sem identificador.")
	}
	if err := validateProject(&p); err != nil {
		return models.Project{}, err
	}
	previous, found := s.project(p.ID)
	if !found {
		loaded, err := s.loadProject(ctx, p.ID)
		if err != nil {
			return models.Project{}, err
		}
		previous = loaded
	}
	if p.ImageURL == "" {
		p.ImageURL = previous.ImageURL
	}
	if mainImage != nil {
		if url, ok := s.UploadImage(ctx, *mainImage); ok {
			p.ImageURL = url
		}
	}
	if p.Gallery == nil {
		p.Gallery = previous.Gallery
	}
	p.Gallery = s.uploadGallery(ctx, p.Gallery, gallery)

	row := models.ProjectToRow(p)
	delete(row, "id")
	if err := s.tables.Update(ctx, models.TableProjects, p.ID, row); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return models.Project{}, ErrNotFound("Projeto não encontrado.")
		}
		logger.Error("[app][projects] update %s: %v", p.ID, err)
		return models.Project{}, ErrFailed("Erro ao atualizar projeto.", err)
	}
	p.CreatedAt = previous.CreatedAt
	_ = s.FetchProjects(ctx)
	return p, nil
}

func (s *State) DeleteProject(ctx context.Context, id string) error {
	if err := s.tables.DeleteByID(ctx, models.TableProjects, id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrNotFound("Projeto não encontrado.")
		}
		logger.Error("[app][projects] delete %s: %v", id, err)
		return ErrFailed("Erro ao eliminar projeto.", err)
	}
	s.mu.Lock()
	kept := s.projects[:0:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	s.mu.Unlock()
	_ = s.FetchProjects(ctx)
	return nil
}

func (s *State) project(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func (s *State) loadProject(ctx context.Context, id string) (models.Project, error) {
	rows, err := s.tables.Select(ctx, models.TableProjects, gateway.Where(gateway.Eq("id", id)).WithLimit(1))
	if err != nil {
		return models.Project{}, ErrFailed("Erro ao atualizar projeto.", err)
	}
	if len(rows) == 0 {
		return models.Project{}, ErrNotFound("Projeto não encontrado.")
	}
	p, err := models.ProjectFromRow(rows[0])
	if err != nil {
		return models.Project{}, ErrFailed("Erro ao atualizar projeto.", err)
	}
	return p, nil
}
