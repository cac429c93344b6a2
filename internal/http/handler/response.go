package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jaekwang-park/dailytasker/internal/middleware"
	"github.com/jaekwang-park/dailytasker/internal/service"
)

type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// WriteValidationError reports the request fields that failed validation.
func WriteValidationError(w http.ResponseWriter, fields []string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorBody{
			Code:    "INVALID_INPUT",
			Message: "request validation failed",
			Fields:  fields,
		},
	})
}

func getUserID(r *http.Request) string {
	return middleware.GetUserID(r)
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "access denied")
	case errors.Is(err, service.ErrUnavailable):
		WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "service unavailable")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
