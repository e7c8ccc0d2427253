package budget

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/walletmill/backend/internal/models"
)

// OccursInMonth reports whether a pattern recurs in the given calendar
// month.
//
// A month the pattern has actually been observed on always counts as a
// recurrence. Beyond the observed months, the recurrence class decides:
// monthly patterns recur every month, bi-monthly and quarterly patterns
// recur in months reachable from an observed month in steps of two or three,
// and yearly patterns never project onto new months.
//
// The result is a pure function of the pattern's persisted fields and the
// month.
func OccursInMonth(p models.Pattern, month time.Month) bool {
	m := int(month)

	// An explicit observation always wins
	if p.ScheduledMonths.Contains(m) {
		return true
	}

	// A pattern without observed months never recurs. This is a data
	// quality issue in the pattern store, not an error.
	if len(p.ScheduledMonths) == 0 {
		log.Debug().
			Str("pattern", p.ID.String()).
			Msg("pattern has no scheduled months, treating as never recurring")
		return false
	}

	switch p.Recurrence {
	case models.RecurrenceMonthly:
		return true
	case models.RecurrenceBiMonthly:
		return reachableInSteps(p.ScheduledMonths, m, 2)
	case models.RecurrenceQuarterly:
		return reachableInSteps(p.ScheduledMonths, m, 3)
	case models.RecurrenceYearly:
		// Already covered by the explicit check above
		return false
	default:
		log.Warn().
			Str("pattern", p.ID.String()).
			Str("recurrence", string(p.Recurrence)).
			Msg("unknown recurrence class, treating as never recurring")
		return false
	}
}

// reachableInSteps reports whether the target month can be reached from any
// scheduled month by adding a whole number of steps, wrapping around the
// year.
func reachableInSteps(scheduled []int, target, step int) bool {
	for _, s := range scheduled {
		diff := target - s
		if ((diff%step)+step)%step == 0 {
			return true
		}
	}

	return false
}
