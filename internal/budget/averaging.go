package budget

import (
	"github.com/shopspring/decimal"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/internal/types"
)

// Strategy labels which denominator was selected when averaging a
// category's spending.
type Strategy string

const (
	// StrategyAllMonths divides by the number of months analyzed. Months
	// without spending count as zero-spend and pull the average down, which
	// is intentional for categories that occur regularly.
	StrategyAllMonths Strategy = "all-months"
	// StrategyActiveMonths divides by the number of months the category
	// actually had spending in. Used for rare categories, where a silent
	// month carries no meaning.
	StrategyActiveMonths Strategy = "active-months"
)

// SelectDenominator decides the divisor for a category's monthly average.
//
// categoryMonths is the number of analyzed months in which the category had
// at least one unexplained transaction, populatedMonths the number of months
// in which any category had one, and monthsAnalyzed the total window length.
//
// A category is considered dense when it has data in at least half of the
// months that have data at all; dense categories average over the whole
// window. Sparse categories average over their active months only, so that
// an occasional category is not deflated by months in which its absence
// means nothing.
//
// A non-positive monthsAnalyzed falls back to the active months. A category
// that has data has at least one active month, so the divisor is never zero.
func SelectDenominator(categoryMonths, populatedMonths, monthsAnalyzed int) (int, Strategy) {
	if categoryMonths > 0 && (monthsAnalyzed <= 0 || 2*categoryMonths < populatedMonths) {
		return categoryMonths, StrategyActiveMonths
	}

	return monthsAnalyzed, StrategyAllMonths
}

// Average is the monthly base average of a category's unexplained spending.
type Average struct {
	Total            decimal.Decimal
	Amount           decimal.Decimal // Total divided by Denominator, rounded half up
	TransactionCount int
	MonthsWithData   int
	Denominator      int
	Strategy         Strategy
}

// Averages aggregates unexplained transactions by category key and computes
// the monthly base average per key.
func Averages(unpatterned []models.Transaction, window Window) map[Key]Average {
	totals := make(map[Key]decimal.Decimal)
	counts := make(map[Key]int)
	activeMonths := make(map[Key]map[types.Month]struct{})
	populated := make(map[types.Month]struct{})

	for _, t := range unpatterned {
		key, ok := transactionKey(t)
		if !ok {
			continue
		}

		// Dates are stored in UTC, enforce it here so months compare equal
		month := types.MonthOf(t.Date.UTC())
		populated[month] = struct{}{}

		if activeMonths[key] == nil {
			activeMonths[key] = make(map[types.Month]struct{})
		}
		activeMonths[key][month] = struct{}{}

		totals[key] = totals[key].Add(t.Amount.Abs())
		counts[key]++
	}

	averages := make(map[Key]Average, len(totals))
	for key, total := range totals {
		denominator, strategy := SelectDenominator(len(activeMonths[key]), len(populated), window.Months)

		averages[key] = Average{
			Total:            total,
			Amount:           total.Div(decimal.NewFromInt(int64(denominator))).Round(0),
			TransactionCount: counts[key],
			MonthsWithData:   len(activeMonths[key]),
			Denominator:      denominator,
			Strategy:         strategy,
		}
	}

	return averages
}
