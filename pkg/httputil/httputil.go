package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/medflow/arztliste/pkg/errors"
	"github.com/medflow/arztliste/pkg/i18n"
)

// Response is a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody represents an error in the response
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	})
}

// Error sends an error response (uses default locale)
func Error(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, Response{Error: &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}})
		return
	}

	writeJSON(w, http.StatusInternalServerError, Response{Error: &ErrorBody{
		Code:    errors.CodeInternal,
		Message: "an unexpected error occurred",
	}})
}

// ErrorLocalized sends a localized error response using request context
func ErrorLocalized(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, Response{Error: &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Localize(r.Context()),
			Details: appErr.Details,
		}})
		return
	}

	localizer := i18n.LocalizerFromContext(r.Context())
	writeJSON(w, http.StatusInternalServerError, Response{Error: &ErrorBody{
		Code:    errors.CodeInternal,
		Message: localizer.T("errors.internal"),
	}})
}

func writeJSON(w http.ResponseWriter, statusCode int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
