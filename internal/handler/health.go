package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger is the slice of the database the health handler needs: one
// connectivity probe. Accepting an interface keeps the handler testable
// without a real database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleLiveness answers 200 unconditionally — it only proves the process is
// up and serving. No dependency checks here; a dead database must not make
// the orchestrator restart a perfectly healthy process.
//
// HTTP: GET /health/liveness
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "OK"})
}

// HandleReadiness probes the backing store and reports whether this instance
// can actually serve traffic.
//
// HTTP: GET /health/readiness
// 200 {"status":"OK"} or 500 {"status":"ERROR","message":...}.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("readiness probe failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, healthResponse{
			Status:  "ERROR",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "OK"})
}
