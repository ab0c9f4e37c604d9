// Package app holds the site's application state: the in-memory copies of
// projects, reviews, budget requests and settings, the admin auth flag, and
// every operation that changes them.
//
// Operations validate their input, write through the gateway and then refresh
// the affected collection. Reads return copies.
package app

import (
	"context"
	"sync"
	"time"

	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/models"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=state.go -destination=mocks/mock_state.go -package=mock_app

// SettingsStore is the two-tier settings persistence.
type SettingsStore interface {
	SettingsReader
	APIKey() string
	Load(ctx context.Context) (models.AppSettings, error)
	Save(ctx context.Context, email, logoURL, apiKey string) (models.AppSettings, bool, error)
}

// DescriptionGenerator drafts a project description.
type DescriptionGenerator interface {
	Generate(ctx context.Context, title, projectType string) string
}

type Deps struct {
	Tables    gateway.Tables
	Storage   gateway.Storage
	Auth      gateway.Auth
	Settings  SettingsStore
	Notifier  Notifier
	Generator DescriptionGenerator
	Hooks     []Hook
	Now       func() time.Time
}

type State struct {
	tables    gateway.Tables
	storage   gateway.Storage
	auth      gateway.Auth
	settings  SettingsStore
	notifier  Notifier
	generator DescriptionGenerator
	hooks     []Hook
	now       func() time.Time

	mu             sync.RWMutex
	projects       []models.Project
	reviews        []models.Review
	budgetRequests []models.BudgetRequest
	authenticated  bool

	baseCtx     context.Context
	unsubscribe func()
}

func New(deps Deps) *State {
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &State{
		tables:         deps.Tables,
		storage:        deps.Storage,
		auth:           deps.Auth,
		settings:       deps.Settings,
		notifier:       deps.Notifier,
		generator:      deps.Generator,
		hooks:          deps.Hooks,
		now:            now,
		projects:       []models.Project{},
		reviews:        []models.Review{},
		budgetRequests: []models.BudgetRequest{},
		baseCtx:        context.Background(),
	}
}

// AddHook appends a post-commit hook. It must be called before Start.
func (s *State) AddHook(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Start learns the session state, subscribes to auth changes and loads every
// collection. Each fetch updates its own slice; a failed fetch is logged and
// leaves that slice as it was.
func (s *State) Start(ctx context.Context) {
	s.baseCtx = context.WithoutCancel(ctx)

	authenticated := s.auth.ActiveSessions() > 0
	s.mu.Lock()
	s.authenticated = authenticated
	s.mu.Unlock()
	s.unsubscribe = s.auth.OnAuthStateChange(s.onAuthChange)

	var g errgroup.Group
	g.Go(func() error { _ = s.FetchProjects(ctx); return nil })
	g.Go(func() error { _ = s.FetchReviews(ctx, authenticated); return nil })
	g.Go(func() error { _ = s.FetchSettings(ctx); return nil })
	if authenticated {
		g.Go(func() error { _ = s.FetchBudgetRequests(ctx); return nil })
	}
	_ = g.Wait()
}

// Close stops listening to auth changes.
func (s *State) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// onAuthChange moves between the anonymous and authenticated states.
func (s *State) onAuthChange(event gateway.AuthEvent) {
	authenticated := event.Active > 0
	s.mu.Lock()
	changed := s.authenticated != authenticated
	s.authenticated = authenticated
	if changed && !authenticated {
		s.budgetRequests = []models.BudgetRequest{}
	}
	s.mu.Unlock()
	if !changed {
		return
	}
	ctx := s.baseCtx
	if authenticated {
		logger.Info("[app][auth] admin signed in, loading admin data")
		_ = s.FetchBudgetRequests(ctx)
		_ = s.FetchReviews(ctx, true)
		return
	}
	logger.Info("[app][auth] no admin session left")
	_ = s.FetchReviews(ctx, false)
}

func (s *State) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		p.Gallery = append([]models.GalleryItem(nil), p.Gallery...)
		out[i] = p
	}
	return out
}

// Reviews returns the loaded reviews. Unapproved reviews are only included
// when includeUnapproved is set.
func (s *State) Reviews(includeUnapproved bool) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		if r.Approved || includeUnapproved {
			out = append(out, r)
		}
	}
	return out
}

func (s *State) BudgetRequests() []models.BudgetRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BudgetRequest, len(s.budgetRequests))
	for i, b := range s.budgetRequests {
		b.Attachments = append([]string(nil), b.Attachments...)
		out[i] = b
	}
	return out
}

func (s *State) Settings() models.AppSettings {
	return s.settings.Current().WithDefaults()
}

func (s *State) FetchProjects(ctx context.Context) error {
	rows, err := s.tables.Select(ctx, models.TableProjects, gateway.Query{}.Order("created_at", true))
	if err != nil {
		logger.Warn("[app][fetch] projects: %v", err)
		return err
	}
	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		p, err := models.ProjectFromRow(row)
		if err != nil {
			logger.Warn("[app][fetch] projects: %v", err)
			return err
		}
		projects = append(projects, p)
	}
	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return nil
}

// FetchReviews reloads reviews newest first. Without includeUnapproved only
// approved rows are requested.
func (s *State) FetchReviews(ctx context.Context, includeUnapproved bool) error {
	q := gateway.Query{}
	if !includeUnapproved {
		q = gateway.Where(gateway.Eq("approved", true))
	}
	rows, err := s.tables.Select(ctx, models.TableReviews, q.Order("date", true))
	if err != nil {
		logger.Warn("[app][fetch] reviews: %v", err)
		return err
	}
	reviews := make([]models.Review, 0, len(rows))
	for _, row := range rows {
		r, err := models.ReviewFromRow(row)
		if err != nil {
			logger.Warn("[app][fetch] reviews: %v", err)
			return err
		}
		reviews = append(reviews, r)
	}
	s.mu.Lock()
	s.reviews = reviews
	s.mu.Unlock()
	return nil
}

// FetchBudgetRequests reloads the requests newest first. It is a no-op while
// no admin is signed in.
func (s *State) FetchBudgetRequests(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return nil
	}
	rows, err := s.tables.Select(ctx, models.TableBudgetRequests, gateway.Query{}.Order("created_at", true))
	if err != nil {
		logger.Warn("[app][fetch] budget requests: %v", err)
		return err
	}
	requests := make([]models.BudgetRequest, 0, len(rows))
	for _, row := range rows {
		b, err := models.BudgetRequestFromRow(row)
		if err != nil {
			logger.Warn("[app][fetch] budget requests: %v", err)
			return err
		}
		requests = append(requests, b)
	}
	s.mu.Lock()
	if s.authenticated {
		s.budgetRequests = requests
	}
	s.mu.Unlock()
	return nil
}

func (s *State) FetchSettings(ctx context.Context) error {
	_, err := s.settings.Load(ctx)
	return err
}

// runHooks calls every hook in order after a committed write.
func (s *State) runHooks(ctx context.Context, event Event) {
	ctx = context.WithoutCancel(ctx)
	for _, h := range s.hooks {
		if err := h.Handle(ctx, event); err != nil {
			logger.Warn("[app][hook] %s: %v", event.Type, err)
		}
	}
}
