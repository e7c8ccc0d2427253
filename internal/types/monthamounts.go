package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthAmount is the budgeted amount for one calendar month.
type MonthAmount struct {
	Month  int             `json:"month" example:"3"`
	Amount decimal.Decimal `json:"amount" example:"1200"`
}

// MonthAmounts is the per-month schedule of a variable budget, stored as a
// JSON array. A valid schedule has exactly one entry for every calendar
// month 1-12, in order.
type MonthAmounts []MonthAmount

var ErrInvalidMonthAmounts = errors.New("a monthly budget schedule must have exactly one entry per calendar month")

// Validate verifies that the schedule covers the months 1-12 exactly once,
// in ascending order.
func (a MonthAmounts) Validate() error {
	if len(a) != 12 {
		return ErrInvalidMonthAmounts
	}

	for i, entry := range a {
		if entry.Month != i+1 {
			return ErrInvalidMonthAmounts
		}
	}

	return nil
}

// Amount returns the amount scheduled for a calendar month. Months outside
// the schedule return zero.
func (a MonthAmounts) Amount(month int) decimal.Decimal {
	for _, entry := range a {
		if entry.Month == month {
			return entry.Amount
		}
	}

	return decimal.Zero
}

// Scan reads the value from the database.
func (a *MonthAmounts) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into MonthAmounts", value)
	}
}

// Value returns the value for the SQL driver to write to the database.
func (a MonthAmounts) Value() (driver.Value, error) {
	j, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	return string(j), nil
}

// GormDataType defines the data type used by gorm for the type.
func (MonthAmounts) GormDataType() string {
	return "text"
}
