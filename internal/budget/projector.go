package budget

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/internal/types"
	"golang.org/x/exp/slices"
)

// Projection is the computed twelve-month budget for one category key.
type Projection struct {
	Key              Key
	BudgetType       models.BudgetType
	FixedAmount      decimal.Decimal    // Set for fixed budgets
	Months           types.MonthAmounts // Set for variable budgets
	BaseAverage      decimal.Decimal
	TransactionCount int
	PatternCount     int
}

// PatternContribution records that a pattern contributes its amount to a
// calendar month. Used for the diagnostic breakdown.
type PatternContribution struct {
	PatternID uuid.UUID       `json:"patternId"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// BreakdownLine is one category line of the diagnostic breakdown.
type BreakdownLine struct {
	CategoryID    uuid.UUID       `json:"categoryId"`
	SubCategoryID uuid.NullUUID   `json:"subCategoryId"`
	Amount        decimal.Decimal `json:"amount"`
}

// MonthBreakdown lists which category lines and which patterns contribute
// to one calendar month.
type MonthBreakdown struct {
	Month    int                   `json:"month"`
	Lines    []BreakdownLine       `json:"lines"`
	Patterns []PatternContribution `json:"patterns"`
}

// Project produces one Projection per category key appearing in the base
// averages or in the approved patterns, plus the per-month diagnostic
// breakdown across all keys.
//
// A category whose patterns are all monthly (or that has no patterns) gets a
// fixed budget: the base average plus the monthly pattern amounts. Any
// non-monthly pattern makes the budget variable, with each calendar month
// receiving the base average plus the patterns recurring in that month.
func Project(averages map[Key]Average, patterns []models.Pattern) ([]Projection, []MonthBreakdown) {
	byKey := groupPatterns(patterns)

	keys := make([]Key, 0, len(averages)+len(byKey))
	for key := range averages {
		keys = append(keys, key)
	}
	for key := range byKey {
		if _, ok := averages[key]; !ok {
			keys = append(keys, key)
		}
	}
	sortKeys(keys)

	breakdown := make([]MonthBreakdown, 12)
	for i := range breakdown {
		breakdown[i].Month = i + 1
	}

	projections := make([]Projection, 0, len(keys))
	for _, key := range keys {
		average := averages[key] // Zero value when the key has no unexplained history
		pats := byKey[key]

		projection := Projection{
			Key:              key,
			BaseAverage:      average.Amount,
			TransactionCount: average.TransactionCount,
			PatternCount:     len(pats),
		}

		if allMonthly(pats) {
			projection.BudgetType = models.BudgetTypeFixed
			projection.FixedAmount = average.Amount
			for _, p := range pats {
				projection.FixedAmount = projection.FixedAmount.Add(p.AverageAmount)
			}
		} else {
			projection.BudgetType = models.BudgetTypeVariable
			projection.Months = make(types.MonthAmounts, 0, 12)
			for month := 1; month <= 12; month++ {
				amount := average.Amount
				for _, p := range pats {
					if OccursInMonth(p, time.Month(month)) {
						amount = amount.Add(p.AverageAmount)
					}
				}

				projection.Months = append(projection.Months, types.MonthAmount{Month: month, Amount: amount})
			}
		}

		appendBreakdown(breakdown, projection, pats)
		logProjection(projection)
		projections = append(projections, projection)
	}

	return projections, breakdown
}

// MonthAmount returns the amount a projection assigns to one calendar month.
func (p Projection) MonthAmount(month int) decimal.Decimal {
	if p.BudgetType == models.BudgetTypeFixed {
		return p.FixedAmount
	}

	return p.Months.Amount(month)
}

// groupPatterns indexes patterns by the category key their matcher targets,
// in deterministic matcher order. Patterns with unusable category
// references are skipped and logged.
func groupPatterns(patterns []models.Pattern) map[Key][]models.Pattern {
	byKey := make(map[Key][]models.Pattern)
	for _, m := range newMatchers(patterns) {
		byKey[m.key] = append(byKey[m.key], m.pattern)
	}

	return byKey
}

func allMonthly(patterns []models.Pattern) bool {
	for _, p := range patterns {
		if p.Recurrence != models.RecurrenceMonthly {
			return false
		}
	}

	return true
}

// sortKeys orders category keys for stable output.
func sortKeys(keys []Key) {
	slices.SortFunc(keys, func(a, b Key) int {
		if c := strings.Compare(a.CategoryID.String(), b.CategoryID.String()); c != 0 {
			return c
		}
		if a.SubCategoryID.Valid != b.SubCategoryID.Valid {
			if !a.SubCategoryID.Valid {
				return -1
			}
			return 1
		}
		return strings.Compare(a.SubCategoryID.UUID.String(), b.SubCategoryID.UUID.String())
	})
}

// appendBreakdown adds the projection's per-month amounts and pattern
// contributions to the diagnostic breakdown.
func appendBreakdown(breakdown []MonthBreakdown, projection Projection, patterns []models.Pattern) {
	for i := range breakdown {
		month := breakdown[i].Month

		breakdown[i].Lines = append(breakdown[i].Lines, BreakdownLine{
			CategoryID:    projection.Key.CategoryID,
			SubCategoryID: projection.Key.SubCategoryID,
			Amount:        projection.MonthAmount(month),
		})

		for _, p := range patterns {
			if OccursInMonth(p, time.Month(month)) {
				breakdown[i].Patterns = append(breakdown[i].Patterns, PatternContribution{
					PatternID: p.ID,
					Name:      p.Name,
					Amount:    p.AverageAmount,
				})
			}
		}
	}
}

// logProjection emits a debug line per computed projection.
func logProjection(p Projection) {
	log.Debug().
		Str("category", p.Key.String()).
		Str("type", string(p.BudgetType)).
		Str("baseAverage", p.BaseAverage.String()).
		Int("transactions", p.TransactionCount).
		Int("patterns", p.PatternCount).
		Msg("projected category budget")
}
