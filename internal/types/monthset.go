package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slices"
)

// MonthSet is a set of calendar months (1-12), stored as a JSON array.
//
// It records the months a recurring pattern has been observed on. The set is
// kept sorted and free of duplicates, see Normalize.
type MonthSet []int

// Normalize returns the set sorted ascending with duplicates and
// out-of-range values removed.
func (s MonthSet) Normalize() MonthSet {
	out := make(MonthSet, 0, len(s))
	for _, m := range s {
		if m < 1 || m > 12 {
			continue
		}
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}

	slices.Sort(out)
	return out
}

// Contains reports whether the calendar month is in the set.
func (s MonthSet) Contains(month int) bool {
	return slices.Contains(s, month)
}

// Scan reads the value from the database.
func (s *MonthSet) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into MonthSet", value)
	}
}

// Value returns the value for the SQL driver to write to the database.
func (s MonthSet) Value() (driver.Value, error) {
	j, err := json.Marshal(s.Normalize())
	if err != nil {
		return nil, err
	}

	return string(j), nil
}

// GormDataType defines the data type used by gorm for the type.
func (MonthSet) GormDataType() string {
	return "text"
}
