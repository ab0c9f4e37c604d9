package httpapi

import (
	"net/http"
	"net/url"
	"strings"

	"dnl-site-backend-go/internal/models"
	"dnl-site-backend-go/internal/views"

	"github.com/go-chi/chi/v5"
)

func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := views.AdminOptions{
		Authenticated: s.State.Session(r.Context(), s.cookieToken(r)) != nil,
		Tab:           query.Get("tab"),
		EditID:        query.Get("edit"),
		Notice:        query.Get("aviso"),
	}
	if opts.Authenticated && views.ParseTab(opts.Tab) == views.TabSettings {
		sample := s.SysInfo()
		opts.System = &sample
	}
	s.Pages.Render(w, http.StatusOK, "admin", views.Admin(s.State, opts))
}

func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	result := s.State.Login(r.Context(), email, r.FormValue("password"))
	if !result.Success {
		s.Pages.Render(w, http.StatusUnauthorized, "admin", views.Admin(s.State, views.AdminOptions{
			LoginEmail: email,
			LoginError: result.Error,
		}))
		return
	}
	if err := s.saveCookieToken(w, r, result.Session.Token); err != nil {
		s.State.Logout(r.Context(), result.Session.Token)
		WriteError(w, http.StatusInternalServerError, "Erro de sistema ao iniciar sessão.")
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if token := s.cookieToken(r); token != "" {
		s.State.Logout(r.Context(), token)
	}
	_ = s.saveCookieToken(w, r, "")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// backToTab redirects to the admin tab with an optional notice.
func backToTab(w http.ResponseWriter, r *http.Request, tab views.Tab, notice string) {
	q := url.Values{"tab": {string(tab)}}
	if notice != "" {
		q.Set("aviso", notice)
	}
	http.Redirect(w, r, "/admin?"+q.Encode(), http.StatusSeeOther)
}

func (s *Server) AdminSaveProject(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		backToTab(w, r, views.TabProjects, "Pedido inválido.")
		return
	}
	p, err := projectFromForm(r)
	if err != nil {
		backToTab(w, r, views.TabProjects, "Dados do projeto inválidos.")
		return
	}
	image, gallery := formFile(r, "image"), formFiles(r, "gallery")
	if p.ID != "" {
		_, err = s.State.UpdateProject(r.Context(), p, image, gallery)
	} else {
		_, err = s.State.AddProject(r.Context(), p, image, gallery)
	}
	if err != nil {
		backToTab(w, r, views.TabProjects, appErrorMessage(err))
		return
	}
	backToTab(w, r, views.TabProjects, "Projeto guardado.")
}

func (s *Server) AdminDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.State.DeleteProject(r.Context(), chi.URLParam(r, "projectId")); err != nil {
		backToTab(w, r, views.TabProjects, appErrorMessage(err))
		return
	}
	backToTab(w, r, views.TabProjects, "")
}

func (s *Server) AdminToggleReview(w http.ResponseWriter, r *http.Request) {
	if _, err := s.State.ToggleReviewApproval(r.Context(), chi.URLParam(r, "reviewId")); err != nil {
		backToTab(w, r, views.TabReviews, appErrorMessage(err))
		return
	}
	backToTab(w, r, views.TabReviews, "")
}

func (s *Server) AdminDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.State.DeleteReview(r.Context(), chi.URLParam(r, "reviewId")); err != nil {
		backToTab(w, r, views.TabReviews, appErrorMessage(err))
		return
	}
	backToTab(w, r, views.TabReviews, "")
}

func (s *Server) AdminMarkContacted(w http.ResponseWriter, r *http.Request) {
	if err := s.State.UpdateBudgetStatus(r.Context(), chi.URLParam(r, "requestId"), models.BudgetContacted); err != nil {
		backToTab(w, r, views.TabRequests, appErrorMessage(err))
		return
	}
	backToTab(w, r, views.TabRequests, "")
}

func (s *Server) AdminDeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.State.DeleteBudgetRequest(r.Context(), chi.URLParam(r, "requestId")); err != nil {
		backToTab(w, r, views.TabRequests, appErrorMessage(err))
		return
	}
	backToTab(w, r, views.TabRequests, "")
}

func (s *Server) AdminDeleteAllRequests(w http.ResponseWriter, r *http.Request) {
	if _, err := s.State.DeleteAllBudgetRequests(r.Context()); err != nil {
		backToTab(w, r, views.TabRequests, appErrorMessage(err))
		return
	}
	backToTab(w, r, views.TabRequests, "Todos os pedidos foram eliminados.")
}

// AdminSaveSettings uploads a new logo first when one was chosen.
func (s *Server) AdminSaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		backToTab(w, r, views.TabSettings, "Pedido inválido.")
		return
	}
	logoURL := r.FormValue("logoUrl")
	if logo := formFile(r, "logo"); logo != nil {
		url, ok := s.State.UploadImage(r.Context(), *logo)
		if !ok {
			backToTab(w, r, views.TabSettings, "Erro ao fazer upload do logo.")
			return
		}
		logoURL = url
	}
	if _, err := s.State.UpdateSettings(r.Context(), r.FormValue("notificationEmail"), logoURL, r.FormValue("emailApiKey")); err != nil {
		backToTab(w, r, views.TabSettings, appErrorMessage(err))
		return
	}
	backToTab(w, r, views.TabSettings, "Configurações atualizadas com sucesso.")
}

func (s *Server) AdminTestEmail(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	address := strings.TrimSpace(r.FormValue("email"))
	if address == "" {
		address = s.State.Settings().NotificationEmail
	}
	if s.State.SendTestEmail(r.Context(), address) {
		backToTab(w, r, views.TabSettings, "Email de teste enviado para "+address+". Verifique a caixa de entrada e o SPAM.")
		return
	}
	backToTab(w, r, views.TabSettings, "Falha no envio. Verifique se a sua Access Key está correta.")
}
