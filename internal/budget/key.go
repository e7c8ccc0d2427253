// Package budget implements the recurring-pattern budget projection engine.
//
// The engine turns historical transactions and approved recurring patterns
// into a twelve-month budget per category. All computation is deterministic:
// the same transactions and patterns always produce the same budgets, and
// nothing in this package reads the wall clock.
package budget

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/internal/types"
)

// Key is the aggregation unit of the engine: a category together with an
// optional subcategory. Income categories have no subcategory.
//
// Key is comparable and used directly as a map key, which avoids the
// separator bugs of concatenated string keys.
type Key struct {
	CategoryID    uuid.UUID
	SubCategoryID uuid.NullUUID
}

// String formats the key for logs.
func (k Key) String() string {
	if !k.SubCategoryID.Valid {
		return k.CategoryID.String()
	}

	return fmt.Sprintf("%s/%s", k.CategoryID, k.SubCategoryID.UUID)
}

// transactionKey returns the key a transaction is aggregated under.
// Transactions without a category cannot be aggregated.
func transactionKey(t models.Transaction) (Key, bool) {
	if !t.CategoryID.Valid {
		return Key{}, false
	}

	return Key{
		CategoryID:    t.CategoryID.UUID,
		SubCategoryID: t.SubCategoryID,
	}, true
}

// matcherKey normalizes the category references of a pattern matcher into a
// Key. References that do not carry a usable identifier return an error so
// the caller can skip the pattern instead of miscategorizing it.
func matcherKey(m models.PatternMatcher) (Key, error) {
	if m.Category.IsZero() {
		return Key{}, fmt.Errorf("%w: pattern matcher has no category", types.ErrMalformedReference)
	}

	categoryID, err := m.Category.Resolve()
	if err != nil {
		return Key{}, err
	}

	key := Key{CategoryID: categoryID}

	if m.SubCategory != nil && !m.SubCategory.IsZero() {
		subCategoryID, err := m.SubCategory.Resolve()
		if err != nil {
			return Key{}, err
		}

		key.SubCategoryID = uuid.NullUUID{UUID: subCategoryID, Valid: true}
	}

	return key, nil
}
