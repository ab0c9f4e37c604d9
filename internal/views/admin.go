package views

import (
	"slices"

	"dnl-site-backend-go/internal/models"
	"dnl-site-backend-go/internal/sysinfo"
)

type Tab string

const (
	TabProjects Tab = "projects"
	TabRequests Tab = "requests"
	TabReviews  Tab = "reviews"
	TabSettings Tab = "settings"
)

type TabLink struct {
	Tab    Tab
	Label  string
	Active bool
}

var adminTabs = []struct {
	tab   Tab
	label string
}{
	{TabProjects, "Projetos"},
	{TabRequests, "Solicitações"},
	{TabReviews, "Avaliações"},
	{TabSettings, "Configurações"},
}

// ParseTab falls back to the projects tab for unknown values.
func ParseTab(raw string) Tab {
	for _, t := range adminTabs {
		if string(t.tab) == raw {
			return t.tab
		}
	}
	return TabProjects
}

// ProjectEdit is the project form. Editing is set when a known project was
// selected; otherwise the form creates a new project.
type ProjectEdit struct {
	Editing  bool
	ID       string
	Heading  string
	Form     models.Project
	Types    []string
	Statuses []models.ProjectStatus
}

func NewProjectEdit(projects []models.Project, selectedID string) ProjectEdit {
	edit := ProjectEdit{
		Heading:  "Nova Obra",
		Types:    append([]string(nil), models.ProjectTypes...),
		Statuses: []models.ProjectStatus{models.StatusInProgress, models.StatusCompleted},
		Form: models.Project{
			Type:   models.ProjectTypes[0],
			Status: models.StatusInProgress,
		},
	}
	if selectedID == "" {
		return edit
	}
	i := slices.IndexFunc(projects, func(p models.Project) bool { return p.ID == selectedID })
	if i < 0 {
		return edit
	}
	p := projects[i]
	p.Gallery = slices.Clone(p.Gallery)
	edit.Editing = true
	edit.ID = p.ID
	edit.Heading = "Editar Obra"
	edit.Form = p
	return edit
}

type AdminPage struct {
	Page
	Authenticated bool
	LoginEmail    string
	LoginError    string

	Tab             Tab
	Tabs            []TabLink
	Edit            ProjectEdit
	Projects        []models.Project
	PendingReviews  []models.Review
	ApprovedReviews []models.Review
	Requests        []models.BudgetRequest
	Settings        models.AppSettings
	System          *sysinfo.Sample
	Notice          string
}

// AdminOptions carries the per-request state of the admin panel.
type AdminOptions struct {
	// Authenticated is whether this request carries a live admin session.
	Authenticated bool
	Tab           string
	EditID        string
	LoginEmail    string
	LoginError    string
	Notice        string
	System        *sysinfo.Sample
}

// Admin builds the panel. Without a session only the login form is filled.
func Admin(src Source, opts AdminOptions) AdminPage {
	page := AdminPage{
		Page:          newPage(src, "Painel Admin", PathAdmin),
		Authenticated: opts.Authenticated && src.IsAuthenticated(),
		LoginEmail:    opts.LoginEmail,
		LoginError:    opts.LoginError,
		Notice:        opts.Notice,
	}
	if !page.Authenticated {
		return page
	}
	page.LoginError = ""
	page.Tab = ParseTab(opts.Tab)
	for _, t := range adminTabs {
		page.Tabs = append(page.Tabs, TabLink{Tab: t.tab, Label: t.label, Active: t.tab == page.Tab})
	}
	page.Projects = src.Projects()
	page.Edit = NewProjectEdit(page.Projects, opts.EditID)
	for _, r := range src.Reviews(true) {
		if r.Approved {
			page.ApprovedReviews = append(page.ApprovedReviews, r)
		} else {
			page.PendingReviews = append(page.PendingReviews, r)
		}
	}
	page.Requests = src.BudgetRequests()
	page.Settings = src.Settings()
	if page.Tab == TabSettings {
		page.System = opts.System
	}
	return page
}

// PendingCount is the number of requests not yet contacted.
func (p AdminPage) PendingCount() int {
	n := 0
	for _, r := range p.Requests {
		if r.Status == models.BudgetPending {
			n++
		}
	}
	return n
}
