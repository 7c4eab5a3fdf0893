package handler

// RESPONSE HELPERS:
// Every handler sends JSON through these two functions so the wire format is
// uniform: successes are the entity (or array), failures are always
//
//	{"error": "not_found", "message": "Recommendation with id '7' was not found"}
//
// writeError is the single place domain errors become status codes — the
// service layer returns apperror classes and never sees HTTP.

import (
	"errors"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/sakif/recommendation-service/internal/apperror"
)

// ErrorResponse is the standard error body for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable error type (e.g. "not_found")
	Message string `json:"message"` // human-readable description
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body: once Encode calls
// w.Write, the headers are on the wire and further changes are ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status code and sends it.
//
// errors.Is walks the wrap chain (AppError implements Unwrap), so the
// mapping works no matter how many layers added context on the way up.
// Persistence failures keep their message in the 500 body — the store never
// retries them and the operator needs the cause. Anything unclassified gets
// a generic 500 with no internals leaked.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation),
			errors.Is(err, apperror.ErrPrimaryKeyNotSet):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrPersistence):
			status = http.StatusInternalServerError
			errorType = "persistence_error"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
