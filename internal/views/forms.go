package views

import "dnl-site-backend-go/internal/models"

// FormStatus is where a public form is in its submit cycle.
type FormStatus string

const (
	FormIdle    FormStatus = "idle"
	FormSuccess FormStatus = "success"
	FormFailed  FormStatus = "failed"
)

const (
	ContactSuccessText  = "Pedido enviado com sucesso! Entraremos em contacto brevemente."
	ContactFailureText  = "Não foi possível enviar o pedido. Tente novamente."
	ReviewSuccessTitle  = "Obrigado!"
	ReviewSuccessText   = "A sua avaliação foi enviada com sucesso e será publicada após moderação."
	ReviewFailureText   = "Não foi possível enviar a avaliação. Tente novamente."
	defaultReviewRating = 5
)

type ContactForm struct {
	Name        string
	Email       string
	Phone       string
	Type        string
	Description string
}

// Request converts the form into a new budget request.
func (f ContactForm) Request() models.BudgetRequest {
	return models.BudgetRequest{
		Name:        f.Name,
		Email:       f.Email,
		Phone:       f.Phone,
		Type:        f.Type,
		Description: f.Description,
	}
}

type ContactPage struct {
	Page
	Form    ContactForm
	Types   []string
	Status  FormStatus
	Message string
}

// Contact renders the quote form. On failure the submitted values stay in
// the form; on success the form is cleared.
func Contact(src Source, form ContactForm, status FormStatus, message string) ContactPage {
	switch status {
	case FormSuccess:
		form = ContactForm{}
		if message == "" {
			message = ContactSuccessText
		}
	case FormFailed:
		if message == "" {
			message = ContactFailureText
		}
	default:
		status = FormIdle
	}
	if form.Type == "" {
		form.Type = models.ProjectTypes[0]
	}
	return ContactPage{
		Page:    newPage(src, "Solicite um Orçamento", PathContact),
		Form:    form,
		Types:   append([]string(nil), models.ProjectTypes...),
		Status:  status,
		Message: message,
	}
}

type ReviewForm struct {
	ClientName string
	Rating     int
	Comment    string
}

func (f ReviewForm) Review() models.Review {
	return models.Review{ClientName: f.ClientName, Rating: f.Rating, Comment: f.Comment}
}

type ReviewFormPage struct {
	Page
	Form    ReviewForm
	Stars   []int
	Status  FormStatus
	Title   string
	Message string
}

func ReviewFormView(src Source, form ReviewForm, status FormStatus, message string) ReviewFormPage {
	if form.Rating < 1 || form.Rating > 5 {
		form.Rating = defaultReviewRating
	}
	page := ReviewFormPage{
		Page:   newPage(src, "Avalie o Nosso Trabalho", PathReview),
		Form:   form,
		Stars:  []int{1, 2, 3, 4, 5},
		Status: status,
	}
	switch status {
	case FormSuccess:
		page.Title = ReviewSuccessTitle
		page.Message = ReviewSuccessText
	case FormFailed:
		page.Message = message
		if page.Message == "" {
			page.Message = ReviewFailureText
		}
	default:
		page.Status = FormIdle
	}
	return page
}
