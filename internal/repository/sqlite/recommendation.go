package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sakif/recommendation-service/internal/apperror"
	"github.com/sakif/recommendation-service/internal/model"
	"github.com/sakif/recommendation-service/internal/repository"
)

// Compile-time check that *DB implements the repository interface.
// `var _ X = (*Y)(nil)` fails to compile the moment a method goes missing,
// instead of at some distant call site.
var _ repository.RecommendationRepository = (*DB)(nil)

const recommendationColumns = `id, name, product_id, recommended_product_id, recommendation_type`

// Create inserts a new recommendation and assigns it a fresh id.
//
// Any client-supplied id is discarded: the id comes from SQLite's
// AUTOINCREMENT via LastInsertId. rec is a pointer so the caller sees the
// assigned id after this returns.
//
// A failed insert leaves nothing behind — each statement is its own implicit
// transaction, so there is no partial write to roll back beyond what SQLite
// already undid.
func (db *DB) Create(ctx context.Context, rec *model.Recommendation) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO recommendations (name, product_id, recommended_product_id, recommendation_type)
		 VALUES (?, ?, ?, ?)`,
		rec.Name,
		rec.ProductID,
		rec.RecommendedProductID,
		rec.RecommendationType,
	)
	if err != nil {
		return apperror.Persistence("creating recommendation", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperror.Persistence("reading new recommendation id", err)
	}
	rec.ID = id

	return nil
}

// GetByID retrieves a single recommendation by its id.
//
// sql.ErrNoRows is not really an error — it means "no matching row". We
// translate it to the domain's NotFound so the handler knows to return 404.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Recommendation, error) {
	var rec model.Recommendation

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+recommendationColumns+`
		 FROM recommendations
		 WHERE id = ?`,
		id,
	).Scan(
		&rec.ID,
		&rec.Name,
		&rec.ProductID,
		&rec.RecommendedProductID,
		&rec.RecommendationType,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Recommendation", id)
		}
		return nil, fmt.Errorf("sqlite: getting recommendation %d: %w", id, err)
	}

	return &rec, nil
}

// List returns every recommendation matching the filter, in id order.
// An empty filter matches everything — that is the plain "all" scan.
//
// The WHERE clause is built from the non-nil criteria. Only the column names
// are assembled in Go (from a fixed set below, never from user input); every
// value still goes through a ? placeholder.
func (db *DB) List(ctx context.Context, filter repository.Filter) ([]model.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations`

	var clauses []string
	var args []any
	if filter.Name != nil {
		clauses = append(clauses, "name = ?")
		args = append(args, *filter.Name)
	}
	if filter.ProductID != nil {
		clauses = append(clauses, "product_id = ?")
		args = append(args, *filter.ProductID)
	}
	if filter.RecommendedProductID != nil {
		clauses = append(clauses, "recommended_product_id = ?")
		args = append(args, *filter.RecommendedProductID)
	}
	if filter.RecommendationType != nil {
		clauses = append(clauses, "recommendation_type = ?")
		args = append(args, *filter.RecommendationType)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing recommendations: %w", err)
	}
	// rows holds a pool connection — forgetting Close leaks it.
	defer rows.Close()

	recs := []model.Recommendation{}
	for rows.Next() {
		var rec model.Recommendation
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.ProductID,
			&rec.RecommendedProductID, &rec.RecommendationType,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning recommendation row: %w", err)
		}
		recs = append(recs, rec)
	}

	// rows.Err() catches failures that happened during iteration, like the
	// connection dropping mid-scan.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating recommendations: %w", err)
	}

	return recs, nil
}

// Update rewrites the mutable columns of an existing recommendation.
// The id is immutable and only ever appears in the WHERE clause.
//
// An entity with id zero was never persisted; updating it is a caller bug
// surfaced as PrimaryKeyNotSet rather than a silent no-op. RowsAffected
// catches the other failure mode: the row existed when the caller loaded it
// but has since been deleted.
func (db *DB) Update(ctx context.Context, rec *model.Recommendation) error {
	if rec.ID == 0 {
		return apperror.PrimaryKeyNotSet()
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE recommendations
		 SET name = ?, product_id = ?, recommended_product_id = ?, recommendation_type = ?
		 WHERE id = ?`,
		rec.Name,
		rec.ProductID,
		rec.RecommendedProductID,
		rec.RecommendationType,
		rec.ID,
	)
	if err != nil {
		return apperror.Persistence(fmt.Sprintf("updating recommendation %d", rec.ID), err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence("checking rows affected", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Recommendation", rec.ID)
	}

	return nil
}

// Delete removes a recommendation by id. Deleting an absent id is a
// successful no-op, which makes DELETE idempotent all the way up to the
// HTTP layer (always 204).
func (db *DB) Delete(ctx context.Context, id int64) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM recommendations WHERE id = ?`,
		id,
	)
	if err != nil {
		return apperror.Persistence(fmt.Sprintf("deleting recommendation %d", id), err)
	}

	return nil
}
