package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single processed bank or credit card charge.
//
// Transactions are created and categorized by the ingestion subsystem. The
// projection engine reads them and never writes, including the
// ExcludedFromBudget flag, which only the user-facing exclusion flow flips.
type Transaction struct {
	DefaultModel
	UserID             uuid.UUID       `gorm:"index"`
	Date               time.Time       `json:"date"`
	Amount             decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Signed: negative for charges, positive for income
	Description        string
	Note               string
	CategoryID         uuid.NullUUID `gorm:"index"`
	Category           Category      `json:"-"`
	SubCategoryID      uuid.NullUUID
	SubCategory        SubCategory `json:"-"`
	ExcludedFromBudget bool
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}
