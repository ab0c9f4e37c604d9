package views

import (
	"slices"

	"dnl-site-backend-go/internal/models"
)

const featuredLimit = 3

type HomePage struct {
	Page
	Featured []models.Project
	Reviews  []models.Review
	Steps    []Step
	Benefits []Benefit
}

// Home shows the newest completed projects and the approved reviews.
func Home(src Source) HomePage {
	featured := filterProjects(src.Projects(), models.StatusCompleted)
	if len(featured) > featuredLimit {
		featured = featured[:featuredLimit]
	}
	return HomePage{
		Page:     newPage(src, "DNL Remodelações", PathHome),
		Featured: featured,
		Reviews:  src.Reviews(false),
		Steps:    slices.Clone(processSteps),
		Benefits: slices.Clone(benefits),
	}
}

// AllCategories is the portfolio filter that matches every project type.
const AllCategories = "Todos"

type PortfolioPage struct {
	Page
	Filter     string
	Categories []string
	Projects   []models.Project
}

// Portfolio lists completed projects of the chosen type. An empty or
// unknown filter falls back to all categories.
func Portfolio(src Source, filter string) PortfolioPage {
	if filter == "" || !slices.Contains(models.ProjectTypes, filter) {
		filter = AllCategories
	}
	completed := filterProjects(src.Projects(), models.StatusCompleted)
	projects := completed
	if filter != AllCategories {
		projects = make([]models.Project, 0, len(completed))
		for _, p := range completed {
			if p.Type == filter {
				projects = append(projects, p)
			}
		}
	}
	return PortfolioPage{
		Page:       newPage(src, "Portfólio", PathPortfolio),
		Filter:     filter,
		Categories: append([]string{AllCategories}, models.ProjectTypes...),
		Projects:   projects,
	}
}

const (
	OngoingEmptyTitle = "Nenhuma obra em andamento no momento"
	OngoingEmptyText  = "Estamos a preparar novos projetos. Enquanto isso, espreite o nosso portfólio de obras concluídas."
	// OngoingDefaultImage is shown for projects without a main image.
	OngoingDefaultImage = "https://images.unsplash.com/photo-1541888946425-d81bb19480c5?auto=format&fit=crop&q=80"
	OngoingUnknownStart = "Recentemente"
)

type OngoingCard struct {
	models.Project
	Image    string
	HasVideo bool
	Started  string
}

type OngoingPage struct {
	Page
	Cards      []OngoingCard
	EmptyTitle string
	EmptyText  string
}

func (p OngoingPage) Empty() bool { return len(p.Cards) == 0 }

func Ongoing(src Source) OngoingPage {
	projects := filterProjects(src.Projects(), models.StatusInProgress)
	cards := make([]OngoingCard, 0, len(projects))
	for _, p := range projects {
		card := OngoingCard{
			Project:  p,
			Image:    p.ImageURL,
			HasVideo: p.VideoURL != "",
			Started:  p.StartDate,
		}
		if card.Image == "" {
			card.Image = OngoingDefaultImage
		}
		if card.Started == "" {
			card.Started = OngoingUnknownStart
		}
		cards = append(cards, card)
	}
	return OngoingPage{
		Page:       newPage(src, "Obras em Andamento", PathOngoing),
		Cards:      cards,
		EmptyTitle: OngoingEmptyTitle,
		EmptyText:  OngoingEmptyText,
	}
}

type AboutPage struct {
	Page
	LogoURL string
	History string
	Mission string
	Vision  string
	Values  []Value
}

func About(src Source) AboutPage {
	return AboutPage{
		Page:    newPage(src, "Sobre Nós", PathAbout),
		LogoURL: src.Settings().LogoURL,
		History: aboutHistory,
		Mission: aboutMission,
		Vision:  aboutVision,
		Values:  slices.Clone(companyValues),
	}
}

type ServicesPage struct {
	Page
	Services []Service
	Steps    []Step
}

func Services(src Source) ServicesPage {
	return ServicesPage{
		Page:     newPage(src, "Serviços", PathServices),
		Services: slices.Clone(services),
		Steps:    slices.Clone(processSteps),
	}
}
