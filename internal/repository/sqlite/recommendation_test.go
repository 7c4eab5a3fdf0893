package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/recommendation-service/internal/apperror"
	"github.com/sakif/recommendation-service/internal/model"
	"github.com/sakif/recommendation-service/internal/repository"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" creates a fresh database that lives only for the test — fast,
// isolated, destroyed on close. t.Cleanup is defer scoped to the test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestRecommendation(t *testing.T, db *DB, name string, productID, recommendedID int64, recType string) *model.Recommendation {
	t.Helper()
	rec := &model.Recommendation{
		Name:                 name,
		ProductID:            productID,
		RecommendedProductID: recommendedID,
		RecommendationType:   recType,
	}
	if err := db.Create(context.Background(), rec); err != nil {
		t.Fatalf("failed to create test recommendation: %v", err)
	}
	return rec
}

func TestCreate(t *testing.T) {
	db := newTestDB(t)

	rec := &model.Recommendation{
		Name:                 "shoes",
		ProductID:            123,
		RecommendedProductID: 456,
		RecommendationType:   "up-sell",
	}

	if err := db.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Pointer receiver: the caller's struct got the assigned id.
	if rec.ID == 0 {
		t.Error("Create() did not assign rec.ID")
	}
}

func TestCreate_DiscardsClientSuppliedID(t *testing.T) {
	db := newTestDB(t)

	first := createTestRecommendation(t, db, "a", 1, 2, "cross-sell")

	// A second create with a stale id must still get a fresh key.
	rec := &model.Recommendation{
		ID:                   first.ID,
		Name:                 "b",
		ProductID:            3,
		RecommendedProductID: 4,
		RecommendationType:   "up-sell",
	}
	if err := db.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.ID == first.ID {
		t.Errorf("Create() reused id %d instead of assigning a fresh one", first.ID)
	}
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestRecommendation(t, db, "fetch me", 10, 20, "accessory")

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Name != "fetch me" {
		t.Errorf("Name = %q, want %q", found.Name, "fetch me")
	}
	if found.ProductID != 10 || found.RecommendedProductID != 20 {
		t.Errorf("product ids = (%d, %d), want (10, 20)", found.ProductID, found.RecommendedProductID)
	}
	if found.RecommendationType != "accessory" {
		t.Errorf("RecommendationType = %q, want %q", found.RecommendationType, "accessory")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), 9999)

	if err == nil {
		t.Fatal("GetByID() should have returned an error for a nonexistent id")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestList_Empty(t *testing.T) {
	db := newTestDB(t)

	recs, err := db.List(context.Background(), repository.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(recs) != 0 {
		t.Errorf("List() returned %d recommendations, want 0", len(recs))
	}
}

func TestList_ReturnsAll(t *testing.T) {
	db := newTestDB(t)
	createTestRecommendation(t, db, "a", 1, 2, "cross-sell")
	createTestRecommendation(t, db, "b", 1, 3, "up-sell")
	createTestRecommendation(t, db, "c", 4, 5, "accessory")

	recs, err := db.List(context.Background(), repository.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(recs) != 3 {
		t.Errorf("List() returned %d recommendations, want 3", len(recs))
	}
}

func TestList_Filtered(t *testing.T) {
	db := newTestDB(t)
	createTestRecommendation(t, db, "a", 1, 2, "cross-sell")
	createTestRecommendation(t, db, "b", 1, 3, "up-sell")
	createTestRecommendation(t, db, "c", 4, 5, "up-sell")

	ctx := context.Background()
	productID := int64(1)
	recType := "up-sell"

	// Single criterion.
	recs, err := db.List(ctx, repository.Filter{ProductID: &productID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("List(product_id=1) returned %d rows, want 2", len(recs))
	}

	// Conjunction of criteria: every one must match.
	recs, err = db.List(ctx, repository.Filter{ProductID: &productID, RecommendationType: &recType})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("List(product_id=1, type=up-sell) returned %d rows, want 1", len(recs))
	}
	if recs[0].Name != "b" {
		t.Errorf("filtered row Name = %q, want %q", recs[0].Name, "b")
	}

	// No match is an empty slice, not an error.
	missing := int64(777)
	recs, err = db.List(ctx, repository.Filter{ProductID: &missing})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("List(product_id=777) returned %d rows, want 0", len(recs))
	}
}

func TestList_FilterByName(t *testing.T) {
	db := newTestDB(t)
	createTestRecommendation(t, db, "winter", 1, 2, "cross-sell")
	createTestRecommendation(t, db, "summer", 3, 4, "cross-sell")

	name := "winter"
	recs, err := db.List(context.Background(), repository.Filter{Name: &name})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "winter" {
		t.Errorf("List(name=winter) = %v, want single 'winter' row", recs)
	}
}

func TestUpdate(t *testing.T) {
	db := newTestDB(t)
	rec := createTestRecommendation(t, db, "before", 1, 2, "cross-sell")

	rec.Name = "after"
	rec.RecommendationType = "up-sell"
	if err := db.Update(context.Background(), rec); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := db.GetByID(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Name != "after" {
		t.Errorf("Name = %q, want %q", found.Name, "after")
	}
	if found.RecommendationType != "up-sell" {
		t.Errorf("RecommendationType = %q, want %q", found.RecommendationType, "up-sell")
	}
}

func TestUpdate_PrimaryKeyNotSet(t *testing.T) {
	db := newTestDB(t)

	rec := &model.Recommendation{
		Name:                 "never created",
		ProductID:            1,
		RecommendedProductID: 2,
		RecommendationType:   "cross-sell",
	}

	err := db.Update(context.Background(), rec)
	if !errors.Is(err, apperror.ErrPrimaryKeyNotSet) {
		t.Errorf("Update() error = %v, want ErrPrimaryKeyNotSet", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	rec := &model.Recommendation{
		ID:                   12345,
		ProductID:            1,
		RecommendedProductID: 2,
		RecommendationType:   "cross-sell",
	}

	err := db.Update(context.Background(), rec)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	rec := createTestRecommendation(t, db, "doomed", 1, 2, "cross-sell")

	if err := db.Delete(context.Background(), rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := db.GetByID(context.Background(), rec.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	recs, err := db.List(context.Background(), repository.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("List() after delete returned %d rows, want 0", len(recs))
	}
}

func TestDelete_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Deleting an id that never existed is a successful no-op, twice.
	if err := db.Delete(context.Background(), 4242); err != nil {
		t.Errorf("Delete() of absent id error = %v, want nil", err)
	}
	if err := db.Delete(context.Background(), 4242); err != nil {
		t.Errorf("repeated Delete() of absent id error = %v, want nil", err)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
