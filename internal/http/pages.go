package httpapi

import (
	"net/http"
	"strconv"

	"dnl-site-backend-go/internal/views"
)

func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	s.Pages.Render(w, http.StatusOK, "home", views.Home(s.State))
}

func (s *Server) AboutPage(w http.ResponseWriter, r *http.Request) {
	s.Pages.Render(w, http.StatusOK, "about", views.About(s.State))
}

func (s *Server) ServicesPage(w http.ResponseWriter, r *http.Request) {
	s.Pages.Render(w, http.StatusOK, "services", views.Services(s.State))
}

func (s *Server) PortfolioPage(w http.ResponseWriter, r *http.Request) {
	s.Pages.Render(w, http.StatusOK, "portfolio", views.Portfolio(s.State, r.URL.Query().Get("categoria")))
}

func (s *Server) OngoingPage(w http.ResponseWriter, r *http.Request) {
	s.Pages.Render(w, http.StatusOK, "ongoing", views.Ongoing(s.State))
}

func (s *Server) ContactPage(w http.ResponseWriter, r *http.Request) {
	s.Pages.Render(w, http.StatusOK, "contact", views.Contact(s.State, views.ContactForm{}, views.FormIdle, ""))
}

// ContactSubmit keeps the visitor's input in the form when the request
// could not be stored.
func (s *Server) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		s.Pages.Render(w, http.StatusBadRequest, "contact", views.Contact(s.State, views.ContactForm{}, views.FormFailed, ""))
		return
	}
	form := views.ContactForm{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		Type:        r.FormValue("type"),
		Description: r.FormValue("description"),
	}
	if _, err := s.State.CreateBudgetRequest(r.Context(), form.Request(), formFiles(r, "attachments")); err != nil {
		s.Pages.Render(w, statusOf(err), "contact", views.Contact(s.State, form, views.FormFailed, appErrorMessage(err)))
		return
	}
	s.Pages.Render(w, http.StatusOK, "contact", views.Contact(s.State, form, views.FormSuccess, ""))
}

func (s *Server) ReviewPage(w http.ResponseWriter, r *http.Request) {
	s.Pages.Render(w, http.StatusOK, "review", views.ReviewFormView(s.State, views.ReviewForm{}, views.FormIdle, ""))
}

func (s *Server) ReviewSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.Pages.Render(w, http.StatusBadRequest, "review", views.ReviewFormView(s.State, views.ReviewForm{}, views.FormFailed, ""))
		return
	}
	rating, _ := strconv.Atoi(r.FormValue("rating"))
	form := views.ReviewForm{
		ClientName: r.FormValue("clientName"),
		Rating:     rating,
		Comment:    r.FormValue("comment"),
	}
	if _, err := s.State.AddReview(r.Context(), form.Review()); err != nil {
		s.Pages.Render(w, statusOf(err), "review", views.ReviewFormView(s.State, form, views.FormFailed, appErrorMessage(err)))
		return
	}
	s.Pages.Render(w, http.StatusOK, "review", views.ReviewFormView(s.State, form, views.FormSuccess, ""))
}
