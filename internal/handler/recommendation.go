package handler

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/sakif/recommendation-service/internal/model"
	"github.com/sakif/recommendation-service/internal/repository"
	"github.com/sakif/recommendation-service/internal/service"
)

// RecommendationHandler translates HTTP requests into store operations.
// It owns request parsing, content-type discipline, query-filter validation
// and status-code selection — nothing else. All business rules live in the
// service.
type RecommendationHandler struct {
	service *service.RecommendationService
	logger  *slog.Logger
}

// NewRecommendationHandler creates a RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{service: svc, logger: logger}
}

// requireJSON enforces the content-type contract on mutating routes: a body
// without an application/json content type is 415, short-circuiting before
// any validation runs. mime.ParseMediaType strips parameters, so
// "application/json; charset=utf-8" passes.
func (h *RecommendationHandler) requireJSON(w http.ResponseWriter, r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeJSON(w, http.StatusUnsupportedMediaType, ErrorResponse{
			Error:   "unsupported_media_type",
			Message: "Content-Type must be application/json",
		})
		return false
	}
	return true
}

// decodePayload reads the body into the transfer representation. Every
// decode failure — not a JSON object, wrong scalar type for the integer
// fields, trailing garbage — collapses into one uniform 400, mirroring the
// store's single validation error class.
func (h *RecommendationHandler) decodePayload(w http.ResponseWriter, r *http.Request) (*model.RecommendationPayload, bool) {
	var payload model.RecommendationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("invalid recommendation payload", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid Recommendation: body of request contained bad or no data",
		})
		return nil, false
	}
	return &payload, true
}

// parseID extracts the {id} path parameter. A non-numeric segment means the
// route doesn't identify any resource, so the answer is 404 — the same
// behaviour as a typed route converter.
func (h *RecommendationHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: fmt.Sprintf("Recommendation with id '%s' was not found", raw),
		})
		return 0, false
	}
	return id, true
}

// HandleCreate creates a recommendation.
//
// HTTP: POST /recommendations
// 201 + entity + Location header, 400 on validation failure, 415 on wrong
// content type.
func (h *RecommendationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.requireJSON(w, r) {
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", locationURL(r, rec.ID))
	writeJSON(w, http.StatusCreated, rec)
}

// locationURL builds the absolute URL of a freshly created resource from the
// inbound request, so the Location header works behind any host name.
func locationURL(r *http.Request, id int64) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/recommendations/%d", scheme, r.Host, id)
}

// allowed query parameters for HandleList, each mapping onto one filter
// criterion. Anything else in the query string is rejected outright.
var listFilterParams = map[string]bool{
	"name":                   true,
	"product_id":             true,
	"recommended_product_id": true,
	"recommendation_type":    true,
}

// HandleList returns all recommendations, optionally filtered.
//
// HTTP: GET /recommendations[?name=&product_id=&recommended_product_id=&recommendation_type=]
// Criteria combine with AND by exact equality; no filters means the full
// list. An empty result is 200 with an empty array, never 404. An
// unrecognized parameter — or a non-integer value for an integer filter —
// is 400 with an explicit error payload.
func (h *RecommendationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	for key := range query {
		if !listFilterParams[key] {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_query_parameter",
				Message: fmt.Sprintf("Invalid query parameter: %s", key),
			})
			return
		}
	}

	var filter repository.Filter
	if v := query.Get("name"); v != "" {
		filter.Name = &v
	}
	if v := query.Get("recommendation_type"); v != "" {
		filter.RecommendationType = &v
	}
	for param, target := range map[string]**int64{
		"product_id":             &filter.ProductID,
		"recommended_product_id": &filter.RecommendedProductID,
	} {
		v := query.Get(param)
		if v == "" {
			continue
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_query_parameter",
				Message: fmt.Sprintf("Invalid query parameter: %s must be an integer", param),
			})
			return
		}
		*target = &id
	}

	recs, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// HandleGetByID returns a single recommendation.
//
// HTTP: GET /recommendations/{id}
// 200 + entity, or 404.
func (h *RecommendationHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// HandleUpdate replaces the fields of an existing recommendation, keeping
// its id.
//
// HTTP: PUT /recommendations/{id}
// 200 + entity, 404 if absent, 400 on validation failure, 415 on wrong
// content type.
func (h *RecommendationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if !h.requireJSON(w, r) {
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// HandleDelete removes a recommendation.
//
// HTTP: DELETE /recommendations/{id}
// Always 204 for a numeric id — deletes are idempotent, so whether the row
// existed is not the client's problem.
func (h *RecommendationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
