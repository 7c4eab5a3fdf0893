// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Recommendation represents a product-to-recommended-product mapping with a
// type tag (cross-sell, up-sell, accessory, ...). This is the persisted entity:
// ID is the surrogate key assigned by the store on creation and never changes
// afterwards.
//
// The `json:"..."` tags tell the JSON codec how to serialize this struct.
// Responses always carry an assigned numeric id, so ID is a plain int64 here.
type Recommendation struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	ProductID            int64  `json:"product_id"`
	RecommendedProductID int64  `json:"recommended_product_id"`
	RecommendationType   string `json:"recommendation_type"`
}

// RecommendationPayload is the transfer representation clients send on create
// and update.
//
// WHY POINTER FIELDS?
// With plain values, a decoded payload can't tell "field absent" apart from
// "field present with the zero value" ({"product_id":0} vs no product_id at
// all). Pointers make absence explicit: a nil pointer means the key was
// missing, which is a validation failure for the required fields — never a
// silent default.
//
// The `validate` tags drive go-playground/validator:
//   - required:  nil pointer → missing-field error
//   - max=63:    dereferenced value must fit the column width
//   - omitempty: name may be absent entirely
//
// A client-supplied id is accepted in the payload but never trusted: create
// assigns a fresh id and update uses the id from the URL path.
type RecommendationPayload struct {
	ID                   *int64  `json:"id"`
	Name                 *string `json:"name" validate:"omitempty,max=63"`
	ProductID            *int64  `json:"product_id" validate:"required"`
	RecommendedProductID *int64  `json:"recommended_product_id" validate:"required"`
	RecommendationType   *string `json:"recommendation_type" validate:"required,max=63"`
}

// Apply copies the payload's fields onto the entity, leaving ID untouched.
// Must only be called on a validated payload — the required pointers are
// dereferenced without nil checks. An absent name clears the field.
func (p *RecommendationPayload) Apply(rec *Recommendation) {
	if p.Name != nil {
		rec.Name = *p.Name
	} else {
		rec.Name = ""
	}
	rec.ProductID = *p.ProductID
	rec.RecommendedProductID = *p.RecommendedProductID
	rec.RecommendationType = *p.RecommendationType
}
