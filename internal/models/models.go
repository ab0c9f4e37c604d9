package models

import "time"

const (
	TableProjects       = "projects"
	TableReviews        = "reviews"
	TableBudgetRequests = "budget_requests"
	TableAppSettings    = "app_settings"

	// SettingsRowID is the id of the single app_settings row.
	SettingsRowID = "settings"
)

type ProjectStatus string

const (
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
)

type BudgetStatus string

const (
	BudgetPending   BudgetStatus = "pendente"
	BudgetContacted BudgetStatus = "contactado"
)

// DefaultNotificationEmail is used whenever no notification address is set.
const DefaultNotificationEmail = "contacto@dnlremodelacoes.pt"

// ProjectTypes are the categories offered in the admin form and the
// portfolio filter, in display order.
var ProjectTypes = []string{
	"Residencial",
	"Comercial",
	"Remodelação",
	"Pintura",
	"Canalização",
	"Eletricidade",
}

type GalleryItem struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type Project struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Type           string        `json:"type"`
	Status         ProjectStatus `json:"status"`
	ImageURL       string        `json:"imageUrl"`
	VideoURL       string        `json:"videoUrl,omitempty"`
	Progress       int           `json:"progress"`
	StartDate      string        `json:"startDate,omitempty"`
	CompletionDate string        `json:"completionDate,omitempty"`
	Gallery        []GalleryItem `json:"gallery"`
	CreatedAt      time.Time     `json:"createdAt"`
}

type Review struct {
	ID         string    `json:"id"`
	ClientName string    `json:"clientName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	Date       string    `json:"date"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BudgetRequest struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Attachments []string     `json:"attachments"`
	Status      BudgetStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type AppSettings struct {
	NotificationEmail string `json:"notificationEmail"`
	LogoURL           string `json:"logoUrl"`
	EmailAPIKey       string `json:"emailApiKey,omitempty"`
}

// WithDefaults returns s with the fallback notification email applied.
func (s AppSettings) WithDefaults() AppSettings {
	if s.NotificationEmail == "" {
		s.NotificationEmail = DefaultNotificationEmail
	}
	return s
}

type AdminUser struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}
