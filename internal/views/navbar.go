package views

import "dnl-site-backend-go/internal/models"

const (
	PathHome      = "/"
	PathAbout     = "/sobre"
	PathServices  = "/servicos"
	PathPortfolio = "/portfolio"
	PathOngoing   = "/em-andamento"
	PathContact   = "/orcamento"
	PathReview    = "/avaliar"
	PathAdmin     = "/admin"
)

type NavLink struct {
	Name   string
	Path   string
	Active bool
	// Muted links are shown in a lighter style.
	Muted bool
}

type Navbar struct {
	Links   []NavLink
	LogoURL string
}

// HasLogo reports whether a custom logo replaces the text wordmark.
func (n Navbar) HasLogo() bool {
	return n.LogoURL != ""
}

var navLinks = []struct{ name, path string }{
	{"Home", PathHome},
	{"Sobre Nós", PathAbout},
	{"Serviços", PathServices},
	{"Portfólio", PathPortfolio},
	{"Em Andamento", PathOngoing},
	{"Orçamentos", PathContact},
	{"Admin", PathAdmin},
}

// BuildNavbar marks the link whose path equals current exactly.
func BuildNavbar(current string, settings models.AppSettings) Navbar {
	links := make([]NavLink, len(navLinks))
	for i, l := range navLinks {
		links[i] = NavLink{
			Name:   l.name,
			Path:   l.path,
			Active: l.path == current,
			Muted:  l.path == PathAdmin && l.path != current,
		}
	}
	return Navbar{Links: links, LogoURL: settings.LogoURL}
}
