package budget

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/internal/types"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
)

// Window is the analysis window of a recompute: a number of full calendar
// months ending with End.
type Window struct {
	End    types.Month // Last month included in the window
	Months int
}

// WindowEnding returns the window of the given length ending at end.
func WindowEnding(end types.Month, months int) Window {
	return Window{End: end, Months: months}
}

// Start returns the first month of the window.
func (w Window) Start() types.Month {
	return w.End.AddDate(0, -(w.Months - 1))
}

// Bounds returns the window as a half-open time interval [from, to).
func (w Window) Bounds() (from, to types.Month) {
	return w.Start(), w.End.AddDate(0, 1)
}

// Match is a transaction together with the pattern that explains it.
type Match struct {
	Transaction models.Transaction
	Pattern     models.Pattern
}

// Classification is the partition of a transaction window into transactions
// explained by an approved pattern and the remainder.
type Classification struct {
	Patterned   []Match
	Unpatterned []models.Transaction
}

// matcher is a pattern with its category references normalized and its
// description fragment folded for comparison.
type matcher struct {
	pattern  models.Pattern
	key      Key
	fragment string
}

// foldString normalizes a string for locale-insensitive comparison.
// A cases.Caser is stateful, so a fresh one is used per call.
func foldString(s string) string {
	return cases.Fold().String(s)
}

// matches tests whether the pattern explains the transaction: the absolute
// amount must fall inside the matcher's range, the category key must be
// equal, and the descriptions must contain each other after case folding.
// Fragments with * wildcards are matched as globs instead.
func (m matcher) matches(t models.Transaction) bool {
	key, ok := transactionKey(t)
	if !ok || key != m.key {
		return false
	}

	amount := t.Amount.Abs()
	if amount.LessThan(m.pattern.Matcher.AmountMin) {
		return false
	}
	if !m.pattern.Matcher.AmountMax.IsZero() && amount.GreaterThan(m.pattern.Matcher.AmountMax) {
		return false
	}

	description := foldString(strings.TrimSpace(t.Description))
	if strings.Contains(m.fragment, "*") {
		return glob.Glob(m.fragment, description)
	}

	return strings.Contains(description, m.fragment) || strings.Contains(m.fragment, description)
}

// newMatchers normalizes patterns into matchers in the order they are
// matched in: priority descending, then creation time, then ID.
//
// Patterns whose category references cannot be normalized to an identifier
// are skipped and logged, they must never consume transactions of a
// category they were not meant for.
func newMatchers(patterns []models.Pattern) []matcher {
	sorted := make([]models.Pattern, len(patterns))
	copy(sorted, patterns)
	slices.SortStableFunc(sorted, func(a, b models.Pattern) int {
		if a.Priority != b.Priority {
			if a.Priority > b.Priority {
				return -1
			}
			return 1
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	matchers := make([]matcher, 0, len(sorted))
	for _, p := range sorted {
		key, err := matcherKey(p.Matcher)
		if err != nil {
			log.Warn().
				Err(err).
				Str("pattern", p.ID.String()).
				Msg("skipping pattern with unusable category reference")
			continue
		}

		matchers = append(matchers, matcher{
			pattern:  p,
			key:      key,
			fragment: foldString(strings.TrimSpace(p.Matcher.Description)),
		})
	}

	return matchers
}

// Classify partitions a window of transactions into those explained by an
// approved pattern and those that are not.
//
// Every transaction matches at most one pattern: the first one in matcher
// order wins. When more than one pattern would match, the ambiguity is
// logged so overlapping matchers can be cleaned up, but the amount is only
// counted once.
//
// Transactions that are excluded from budget calculation or carry no
// category are dropped from both sets.
func Classify(transactions []models.Transaction, patterns []models.Pattern) Classification {
	matchers := newMatchers(patterns)

	var c Classification
	for _, t := range transactions {
		if t.ExcludedFromBudget {
			continue
		}

		if _, ok := transactionKey(t); !ok {
			log.Debug().
				Str("transaction", t.ID.String()).
				Msg("skipping transaction without category")
			continue
		}

		matched := false
		for _, m := range matchers {
			if !m.matches(t) {
				continue
			}

			if !matched {
				matched = true
				c.Patterned = append(c.Patterned, Match{Transaction: t, Pattern: m.pattern})
				continue
			}

			log.Debug().
				Str("transaction", t.ID.String()).
				Str("pattern", m.pattern.ID.String()).
				Msg("transaction matches more than one pattern, first match wins")
			break
		}

		if !matched {
			c.Unpatterned = append(c.Unpatterned, t)
		}
	}

	return c
}
