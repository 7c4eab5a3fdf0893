// Package repository declares the persistence interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/sakif/recommendation-service/internal/model"
)

// Filter holds the exact-equality criteria for listing recommendations.
// Nil fields are "don't care"; a fully nil filter matches every row, which
// makes List with an empty Filter the plain "all" operation.
type Filter struct {
	Name                 *string
	ProductID            *int64
	RecommendedProductID *int64
	RecommendationType   *string
}

// Empty reports whether no criteria are set.
func (f Filter) Empty() bool {
	return f.Name == nil && f.ProductID == nil &&
		f.RecommendedProductID == nil && f.RecommendationType == nil
}

// RecommendationRepository is the capability set of the recommendation store.
// Every operation translates to a single SQL statement against one table and
// takes a context so in-flight queries die with the request.
//
// Semantics the implementations must honour:
//   - Create assigns a fresh id (any value in rec.ID is overwritten).
//   - GetByID returns an error wrapping apperror.ErrNotFound for absent ids.
//   - Update fails with apperror.ErrPrimaryKeyNotSet when rec.ID is zero,
//     and with apperror.ErrNotFound when the row has since disappeared.
//   - Delete is idempotent: deleting an absent id succeeds as a no-op.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *model.Recommendation) error
	GetByID(ctx context.Context, id int64) (*model.Recommendation, error)
	List(ctx context.Context, filter Filter) ([]model.Recommendation, error)
	Update(ctx context.Context, rec *model.Recommendation) error
	Delete(ctx context.Context, id int64) error
}
