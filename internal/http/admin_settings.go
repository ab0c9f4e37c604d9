package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"dnl-site-backend-go/internal/models"
)

type SettingsRequest struct {
	NotificationEmail string `json:"notificationEmail"`
	LogoURL           string `json:"logoUrl"`
	EmailAPIKey       string `json:"emailApiKey"`
}

type LogoResponse struct {
	URL string `json:"url"`
}

type TestEmailRequest struct {
	Email string `json:"email"`
}

type TestEmailResponse struct {
	Sent bool `json:"sent"`
}

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.State.Settings())
}

func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}
	saved, err := s.State.UpdateSettings(r.Context(), req.NotificationEmail, req.LogoURL, req.EmailAPIKey)
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

// UploadLogo stores the "file" part and returns its public URL. The settings
// are not changed until they are saved.
func (s *Server) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "O ficheiro está vazio.")
		return
	}
	file := formFile(r, "file")
	if file == nil {
		WriteError(w, http.StatusBadRequest, "O ficheiro está vazio.")
		return
	}
	url, ok := s.State.UploadImage(r.Context(), *file)
	if !ok {
		WriteError(w, http.StatusBadGateway, "Erro ao fazer upload do logo.")
		return
	}
	WriteJSON(w, http.StatusOK, LogoResponse{URL: url})
}

func (s *Server) TestEmail(w http.ResponseWriter, r *http.Request) {
	var req TestEmailRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	address := strings.TrimSpace(req.Email)
	if address == "" {
		address = s.State.Settings().NotificationEmail
	}
	if address == "" {
		address = models.DefaultNotificationEmail
	}
	WriteJSON(w, http.StatusOK, TestEmailResponse{Sent: s.State.SendTestEmail(r.Context(), address)})
}

func (s *Server) SystemInfo(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.SysInfo())
}
