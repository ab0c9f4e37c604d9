// Package views turns the application state into the data each page renders.
// Views only read: every change goes through the app package.
package views

import (
	"dnl-site-backend-go/internal/models"
)

// Source is the read side of the application state.
type Source interface {
	Projects() []models.Project
	Reviews(includeUnapproved bool) []models.Review
	BudgetRequests() []models.BudgetRequest
	Settings() models.AppSettings
	IsAuthenticated() bool
}

// Page is the frame shared by every rendered page.
type Page struct {
	Title  string
	Navbar Navbar
}

func newPage(src Source, title, path string) Page {
	return Page{Title: title, Navbar: BuildNavbar(path, src.Settings())}
}

func filterProjects(projects []models.Project, status models.ProjectStatus) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}
