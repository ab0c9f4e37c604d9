package httpapi

import (
	"net/http"
	"time"

	"dnl-site-backend-go/internal/app"
	"dnl-site-backend-go/internal/config"
	"dnl-site-backend-go/internal/live"
	"dnl-site-backend-go/internal/sysinfo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/sessions"
)

const maxUploadBytes = 32 << 20

type Server struct {
	Config  config.Config
	State   *app.State
	Hub     *live.Hub
	Cookies *sessions.CookieStore
	// MediaRoot is served under /media when uploads are kept on local disk.
	MediaRoot string
	Pages     *Templates
	Now       func() time.Time
	SysInfo   func() sysinfo.Sample
}

func NewServer(cfg config.Config, state *app.State, hub *live.Hub, mediaRoot string) *Server {
	secret := cfg.CookieSecret
	if secret == "" {
		secret = cfg.JWTSecret
	}
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTLSeconds),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	diskPath := mediaRoot
	if diskPath == "" {
		diskPath = "/"
	}
	return &Server{
		Config:    cfg,
		State:     state,
		Hub:       hub,
		Cookies:   cookies,
		MediaRoot: mediaRoot,
		Pages:     MustParseTemplates(),
		Now:       func() time.Time { return time.Now().UTC() },
		SysInfo:   func() sysinfo.Sample { return sysinfo.Capture(diskPath) },
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/", s.HomePage)
	r.Get("/sobre", s.AboutPage)
	r.Get("/servicos", s.ServicesPage)
	r.Get("/portfolio", s.PortfolioPage)
	r.Get("/em-andamento", s.OngoingPage)
	r.Get("/orcamento", s.ContactPage)
	r.Post("/orcamento", s.ContactSubmit)
	r.Get("/avaliar", s.ReviewPage)
	r.Post("/avaliar", s.ReviewSubmit)

	r.Route("/admin", func(admin chi.Router) {
		admin.Get("/", s.AdminPage)
		admin.Post("/login", s.AdminLogin)
		admin.Post("/logout", s.AdminLogout)
		admin.Group(func(panel chi.Router) {
			panel.Use(s.RequireAdminCookie)
			panel.Post("/projects", s.AdminSaveProject)
			panel.Post("/projects/{projectId}/delete", s.AdminDeleteProject)
			panel.Post("/reviews/{reviewId}/toggle", s.AdminToggleReview)
			panel.Post("/reviews/{reviewId}/delete", s.AdminDeleteReview)
			panel.Post("/requests/{requestId}/contacted", s.AdminMarkContacted)
			panel.Post("/requests/{requestId}/delete", s.AdminDeleteRequest)
			panel.Post("/requests/delete-all", s.AdminDeleteAllRequests)
			panel.Get("/requests/export.xlsx", s.ExportBudgetRequests)
			panel.Post("/settings", s.AdminSaveSettings)
			panel.Post("/settings/test-email", s.AdminTestEmail)
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)
		api.Get("/auth/session", s.SessionInfo)

		api.Route("/public", func(pub chi.Router) {
			pub.Get("/projects", s.PublicProjects)
			pub.Get("/reviews", s.PublicReviews)
			pub.Get("/settings", s.PublicSettings)
			pub.Post("/reviews", s.SubmitReview)
			pub.Post("/budget-requests", s.SubmitBudgetRequest)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.State))
			admin.Route("/projects", func(projects chi.Router) {
				projects.Get("/", s.ListProjects)
				projects.Post("/", s.CreateProject)
				projects.Put("/{projectId}", s.UpdateProject)
				projects.Delete("/{projectId}", s.DeleteProject)
				projects.Post("/describe", s.DescribeProject)
			})
			admin.Route("/reviews", func(reviews chi.Router) {
				reviews.Get("/", s.ListReviews)
				reviews.Post("/{reviewId}/toggle", s.ToggleReview)
				reviews.Delete("/{reviewId}", s.DeleteReview)
			})
			admin.Route("/budget-requests", func(requests chi.Router) {
				requests.Get("/", s.ListBudgetRequests)
				requests.Get("/export.xlsx", s.ExportBudgetRequests)
				requests.Put("/{requestId}/status", s.UpdateBudgetStatus)
				requests.Delete("/{requestId}", s.DeleteBudgetRequest)
				requests.Delete("/", s.DeleteAllBudgetRequests)
			})
			admin.Route("/settings", func(settings chi.Router) {
				settings.Get("/", s.GetSettings)
				settings.Put("/", s.UpdateSettings)
				settings.Post("/logo", s.UploadLogo)
				settings.Post("/test-email", s.TestEmail)
			})
			admin.Get("/system", s.SystemInfo)
		})
	})

	r.Get("/ws/events", s.EventsSocket)
	if s.MediaRoot != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(s.MediaRoot))))
	}
	return r
}
