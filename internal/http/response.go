package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"dnl-site-backend-go/internal/app"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// writeAppError answers with the user-facing message of an app.Error and a
// generic 500 for anything else.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *app.Error
	if errors.As(err, &appErr) {
		WriteError(w, appErr.Status, appErr.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, "Erro interno do servidor.")
}

// appErrorMessage is the message an HTML form shows for err.
func appErrorMessage(err error) string {
	var appErr *app.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Erro interno do servidor."
}

func statusOf(err error) int {
	var appErr *app.Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
