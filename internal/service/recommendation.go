// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// The service takes repository.RecommendationRepository (an interface), not
// *sqlite.DB. Tests inject an in-memory mock; production injects SQLite; the
// service never knows the difference. It also never sees HTTP — it returns
// domain errors (apperror) and the handler maps them to status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/recommendation-service/internal/apperror"
	"github.com/sakif/recommendation-service/internal/model"
	"github.com/sakif/recommendation-service/internal/repository"
)

// MaxFieldLength is the column width for name and recommendation_type.
const MaxFieldLength = 63

// RecommendationService handles business logic for recommendations.
type RecommendationService struct {
	repo     repository.RecommendationRepository
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRecommendationService creates a RecommendationService.
//
// The validator is configured to report field names from the json struct
// tags, so validation errors talk about "product_id" the way clients spelled
// it, not the Go field name ProductID.
func NewRecommendationService(repo repository.RecommendationRepository, logger *slog.Logger) *RecommendationService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RecommendationService{
		repo:     repo,
		logger:   logger,
		validate: validate,
	}
}

// validatePayload checks the transfer representation against the field rules
// and folds any failure into a single uniform validation error with a
// human-readable cause. Missing required field and over-long string are the
// two causes the payload struct can produce; wrongly typed and non-object
// bodies never get this far (they fail JSON decoding in the handler).
func (s *RecommendationService) validatePayload(payload *model.RecommendationPayload) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperror.ValidationFailed("", "Invalid Recommendation: body of request contained bad or no data")
	}

	// Report the first failure; one clear cause beats a wall of them.
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperror.ValidationFailed(fe.Field(),
			fmt.Sprintf("Invalid Recommendation: missing %s", fe.Field()))
	case "max":
		return apperror.ValidationFailed(fe.Field(),
			fmt.Sprintf("Invalid Recommendation: %s must be %d characters or less", fe.Field(), MaxFieldLength))
	default:
		return apperror.ValidationFailed(fe.Field(),
			fmt.Sprintf("Invalid Recommendation: invalid %s", fe.Field()))
	}
}

// Create validates the payload and persists a new recommendation.
// Any client-supplied id in the payload is discarded — the store assigns a
// fresh one.
func (s *RecommendationService) Create(ctx context.Context, payload *model.RecommendationPayload) (*model.Recommendation, error) {
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}

	rec := &model.Recommendation{}
	payload.Apply(rec)

	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("failed to create recommendation",
			slog.Int64("product_id", rec.ProductID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("recommendation created",
		slog.Int64("id", rec.ID),
		slog.Int64("product_id", rec.ProductID),
		slog.String("type", rec.RecommendationType),
	)

	return rec, nil
}

// Get retrieves a recommendation by id.
// Returns apperror.ErrNotFound if it doesn't exist.
func (s *RecommendationService) Get(ctx context.Context, id int64) (*model.Recommendation, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the recommendations matching the filter. An empty filter
// returns everything, so "all" and "find by criteria" are one operation with
// one equivalence: zero criteria ⇒ the full table.
func (s *RecommendationService) List(ctx context.Context, filter repository.Filter) ([]model.Recommendation, error) {
	recs, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list recommendations", slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("recommendations listed",
		slog.Int("count", len(recs)),
		slog.Bool("filtered", !filter.Empty()),
	)

	return recs, nil
}

// Update loads the recommendation, applies the validated payload on top of
// it, and writes it back. The id never changes: it comes from the URL path,
// not the body.
//
// Fetch-then-update keeps the "not found" check in one place and lets us
// return the full updated entity to the caller.
func (s *RecommendationService) Update(ctx context.Context, id int64, payload *model.RecommendationPayload) (*model.Recommendation, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}

	payload.Apply(rec)
	rec.ID = id

	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Error("failed to update recommendation",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("recommendation updated", slog.Int64("id", id))

	return rec, nil
}

// Delete removes a recommendation by id. Idempotent: deleting an id that
// doesn't exist succeeds, so the HTTP layer can answer 204 unconditionally.
func (s *RecommendationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete recommendation",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("recommendation deleted", slog.Int64("id", id))
	return nil
}
