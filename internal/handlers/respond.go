// Package handlers contains the HTTP handlers for the admin API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"pressadmin/internal/models"
)

type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Success   bool      `json:"success"`
	Error     errorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// successMessage maps the request method to the standard success message.
func successMessage(method string) string {
	switch method {
	case http.MethodPost:
		return "Resource created successfully"
	case http.MethodPatch, http.MethodPut:
		return "Resource updated successfully"
	case http.MethodDelete:
		return "Resource deleted successfully"
	default:
		return "Data retrieved successfully"
	}
}

// respond writes the success envelope. POST requests get 201, everything
// else 200 unless status overrides it.
func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if status == 0 {
		status = http.StatusOK
		if r.Method == http.MethodPost {
			status = http.StatusCreated
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{
		Success:   true,
		Data:      data,
		Message:   successMessage(r.Method),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		slog.Error("write response failed", "error", err)
	}
}

// respondError maps an error to the error envelope. Unexpected errors are
// logged and rendered as a generic 500 so internals never leak.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := models.AsAppError(err)
	if !ok {
		appErr = models.NewInternalError(err)
	}
	if appErr.HTTPStatus() >= 500 {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		appErr = &models.AppError{Code: models.CodeInternal, Message: "internal server error"}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())
	if encErr := json.NewEncoder(w).Encode(errorEnvelope{
		Success:   false,
		Error:     errorBody{Code: appErr.Code, Message: appErr.Message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}); encErr != nil {
		slog.Error("write error response failed", "error", encErr)
	}
}

// Unauthorized renders the 401 envelope. Passed to the auth middleware so
// denials share the standard error shape.
func Unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	respondError(w, r, models.NewAuthenticationError(message))
}

// decode reads a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("invalid request body")
	}
	return nil
}
