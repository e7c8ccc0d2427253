package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CategoryRef is a reference to a category or subcategory as delivered by
// the categorization subsystem.
//
// Upstream serializes the reference either as a bare identifier string or as
// an embedded object with an identifier and a display name. Both shapes
// unmarshal into CategoryRef; Resolve normalizes to a plain identifier.
// Consumers must resolve at the boundary instead of branching on the shape.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

var ErrMalformedReference = errors.New("the category reference does not contain a valid identifier")

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	// Bare identifier
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = CategoryRef{ID: id}
		return nil
	}

	// Embedded object. Some producers use "_id" instead of "id".
	var obj struct {
		ID    string `json:"id"`
		AltID string `json:"_id"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedReference, err)
	}

	if obj.ID == "" {
		obj.ID = obj.AltID
	}

	*r = CategoryRef{ID: obj.ID, Name: obj.Name}
	return nil
}

// MarshalJSON implements the json.Marshaler interface. A reference without a
// name round-trips as a bare identifier.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if r.Name == "" {
		return json.Marshal(r.ID)
	}

	type plain CategoryRef
	return json.Marshal(plain(r))
}

// IsZero reports whether the reference is unset.
func (r CategoryRef) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

// Resolve returns the identifier the reference points to.
func (r CategoryRef) Resolve() (uuid.UUID, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrMalformedReference, r.ID)
	}

	return id, nil
}
