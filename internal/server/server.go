// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the "composition root": the one place where the whole dependency
// chain is assembled —
//
//	config → sqlite.DB → RecommendationService → RecommendationHandler → routes
//
// Each layer only receives what it needs: the service gets the repository
// interface (not the concrete sqlite.DB), the handler gets the service, and
// nothing holds ambient global state.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/recommendation-service/internal/config"
	"github.com/sakif/recommendation-service/internal/handler"
	"github.com/sakif/recommendation-service/internal/middleware"
	sqliteRepo "github.com/sakif/recommendation-service/internal/repository/sqlite"
	"github.com/sakif/recommendation-service/internal/service"
)

// Server owns the router, the configuration, and the database connection.
// The connection is closed during graceful shutdown so the WAL is flushed
// before the process exits.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                      → service metadata (JSON)
//	GET    /health/liveness       → process-up probe
//	GET    /health/readiness      → database connectivity probe
//	GET    /metrics               → Prometheus metrics
//	GET    /recommendations       → list, with optional exact-match filters
//	POST   /recommendations       → create                [API key]
//	GET    /recommendations/{id}  → fetch one
//	PUT    /recommendations/{id}  → update                [API key]
//	DELETE /recommendations/{id}  → delete (idempotent)   [API key]
//
// Middleware order matters: RealIP before the logger so logs carry real
// client addresses, Recoverer outermost-but-one so a panicking handler
// becomes a 500 instead of a dead process, and metrics around everything we
// want measured.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())

	recService := service.NewRecommendationService(s.db, s.logger)
	recHandler := handler.NewRecommendationHandler(recService, s.logger)
	healthHandler := handler.NewHealthHandler(s.db, s.logger)

	s.router.Get("/", handler.HandleIndex)
	s.router.Get("/health/liveness", healthHandler.HandleLiveness)
	s.router.Get("/health/readiness", healthHandler.HandleReadiness)
	s.router.Handle("/metrics", promhttp.Handler())

	// The API-key gate applies to mutating routes only; reads stay open.
	requireKey := middleware.APIKey(s.config.APIKey, s.logger)

	s.router.Route("/recommendations", func(r chi.Router) {
		r.Get("/", recHandler.HandleList)
		r.Get("/{id}", recHandler.HandleGetByID)
		r.With(requireKey).Post("/", recHandler.HandleCreate)
		r.With(requireKey).Put("/{id}", recHandler.HandleUpdate)
		r.With(requireKey).Delete("/{id}", recHandler.HandleDelete)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up to
// 30 seconds, and close the database last.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DatabasePath),
			slog.Bool("api_key_required", s.config.APIKey != ""),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
