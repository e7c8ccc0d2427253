package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletmill/backend/internal/types"
	"gorm.io/gorm"
)

// Recurrence is the class of a recurring pattern. It governs how the
// pattern projects onto calendar months beyond its observed months.
type Recurrence string

const (
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceBiMonthly Recurrence = "bi-monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceYearly    Recurrence = "yearly"
)

// PatternMatcher describes which transactions a pattern explains.
//
// It is produced by the pattern detection subsystem and stored as a JSON
// column. The category references keep the shape upstream delivered them in
// and are normalized by the projection engine at its boundary.
type PatternMatcher struct {
	Description string             `json:"description"`           // Fragment of the transaction description, may contain * wildcards
	AmountMin   decimal.Decimal    `json:"amountMin"`              // Lower bound for the absolute transaction amount
	AmountMax   decimal.Decimal    `json:"amountMax"`              // Upper bound for the absolute transaction amount
	Category    types.CategoryRef  `json:"category"`               // The category the pattern belongs to
	SubCategory *types.CategoryRef `json:"subCategory,omitempty"` // The subcategory, unset for income patterns
}

// Scan reads the value from the database.
func (m *PatternMatcher) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = PatternMatcher{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into PatternMatcher", value)
	}
}

// Value returns the value for the SQL driver to write to the database.
func (m PatternMatcher) Value() (driver.Value, error) {
	j, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	return string(j), nil
}

// GormDataType defines the data type used by gorm for the type.
func (PatternMatcher) GormDataType() string {
	return "text"
}

// Pattern represents a recurring charge or credit inferred from the
// transaction history.
//
// Only approved patterns participate in budget projection. ScheduledMonths
// holds the calendar months the pattern has been observed on; an empty set
// means the pattern never recurs.
type Pattern struct {
	DefaultModel
	UserID          uuid.UUID `gorm:"index"`
	Name            string
	Recurrence      Recurrence
	ScheduledMonths types.MonthSet
	AverageAmount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Average absolute amount per occurrence
	Approved        bool
	Priority        uint // Higher priority patterns are matched first
	Matcher         PatternMatcher
}

// BeforeSave normalizes the schedule and verifies the matcher amount range.
func (p *Pattern) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.ScheduledMonths = p.ScheduledMonths.Normalize()

	if !p.Matcher.AmountMax.IsZero() && p.Matcher.AmountMin.GreaterThan(p.Matcher.AmountMax) {
		return ErrAmountRangeInverted
	}

	return nil
}
