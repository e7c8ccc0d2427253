package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/internal/types"
	"gorm.io/gorm"
)

// DefaultMonthsToAnalyze is the length of the analysis window when the
// caller does not specify one.
const DefaultMonthsToAnalyze = 6

var recomputeRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "budget_recompute_runs_total",
		Help: "How many budget recomputations ran, partitioned by scope.",
	},
	[]string{"scope"},
)

// Service runs the projection pipeline against the stores.
//
// The service provides no locking. Callers are expected to serialize
// recomputations per user; recomputation is idempotent, so re-running after
// a timeout is safe.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service using the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RecomputeAllResult is the outcome of a full recomputation.
type RecomputeAllResult struct {
	UpdatedCount int              `json:"updatedCount"` // Number of category budgets written
	Months       []MonthBreakdown `json:"months"`       // Diagnostic per-calendar-month contributions
}

// RecomputeOneResult is the outcome of a single-category recomputation.
type RecomputeOneResult struct {
	BaseAverage        decimal.Decimal   `json:"baseAverage"`
	TransactionCount   int               `json:"transactionCount"`
	PatternsCount      int               `json:"patternsCount"`
	BudgetType         models.BudgetType `json:"budgetType"`
	RecalculatedAmount *decimal.Decimal  `json:"recalculatedAmount,omitempty"` // Only set for fixed budgets
}

// window returns the analysis window for a target year: monthsToAnalyze
// full months ending with the last month before January of the target year.
// Tying the window to the target year keeps recomputation free of
// wall-clock dependence.
func window(targetYear, monthsToAnalyze int) Window {
	if monthsToAnalyze <= 0 {
		monthsToAnalyze = DefaultMonthsToAnalyze
	}

	return WindowEnding(types.NewMonth(targetYear-1, time.December), monthsToAnalyze)
}

// RecomputeAll runs the full pipeline for every category key observed in
// the user's history or patterns and overwrites the matching category
// budgets for the target year.
//
// Individual records that cannot be processed are skipped and logged; only
// a failing store query aborts the recomputation.
func (s *Service) RecomputeAll(userID uuid.UUID, targetYear, monthsToAnalyze int) (RecomputeAllResult, error) {
	w := window(targetYear, monthsToAnalyze)

	transactions, err := s.transactions(userID, w)
	if err != nil {
		return RecomputeAllResult{}, err
	}

	patterns, err := s.patterns(userID)
	if err != nil {
		return RecomputeAllResult{}, err
	}

	classification := Classify(transactions, patterns)
	averages := Averages(classification.Unpatterned, w)
	projections, breakdown := Project(averages, patterns)

	result := RecomputeAllResult{Months: breakdown}
	for _, projection := range projections {
		err := s.persist(userID, targetYear, projection, models.BudgetEdit{
			ChangeType:       models.ChangeAutomatic,
			Reason:           "automatic recalculation",
			BaseAverage:      projection.BaseAverage,
			TransactionCount: projection.TransactionCount,
			PatternCount:     projection.PatternCount,
		})
		if err != nil {
			return result, err
		}

		result.UpdatedCount++
	}

	recomputeRuns.WithLabelValues("all").Inc()
	log.Info().
		Str("user", userID.String()).
		Int("year", targetYear).
		Int("updated", result.UpdatedCount).
		Msg("recomputed all category budgets")

	return result, nil
}

// RecomputeOne re-runs the pipeline for a single category key, e.g. after
// the user excluded transactions from budget consideration.
//
// It runs the full pipeline and persists only the requested key. This keeps
// the scoped result identical to what a full recomputation would assign: the
// averaging denominator depends on which months have unexplained spending in
// any category, so it cannot be derived from the key's transactions alone.
func (s *Service) RecomputeOne(userID uuid.UUID, categoryID uuid.UUID, subCategoryID uuid.NullUUID, reason string, targetYear, monthsToAnalyze int) (RecomputeOneResult, error) {
	w := window(targetYear, monthsToAnalyze)
	key := Key{CategoryID: categoryID, SubCategoryID: subCategoryID}

	transactions, err := s.transactions(userID, w)
	if err != nil {
		return RecomputeOneResult{}, err
	}

	patterns, err := s.patterns(userID)
	if err != nil {
		return RecomputeOneResult{}, err
	}

	classification := Classify(transactions, patterns)
	averages := Averages(classification.Unpatterned, w)
	projections, _ := Project(averages, patterns)

	// A key without history or patterns still gets an explicit zero budget
	projection := Projection{
		Key:        key,
		BudgetType: models.BudgetTypeFixed,
	}
	for _, p := range projections {
		if p.Key == key {
			projection = p
			break
		}
	}

	err = s.persist(userID, targetYear, projection, models.BudgetEdit{
		ChangeType:       models.ChangeExclusion,
		Reason:           reason,
		BaseAverage:      projection.BaseAverage,
		TransactionCount: projection.TransactionCount,
		PatternCount:     projection.PatternCount,
	})
	if err != nil {
		return RecomputeOneResult{}, err
	}

	result := RecomputeOneResult{
		BaseAverage:      projection.BaseAverage,
		TransactionCount: projection.TransactionCount,
		PatternsCount:    projection.PatternCount,
		BudgetType:       projection.BudgetType,
	}
	if projection.BudgetType == models.BudgetTypeFixed {
		amount := projection.FixedAmount
		result.RecalculatedAmount = &amount
	}

	recomputeRuns.WithLabelValues("category").Inc()
	log.Info().
		Str("user", userID.String()).
		Str("category", key.String()).
		Str("reason", reason).
		Msg("recomputed category budget")

	return result, nil
}

// transactions loads the categorized, non-excluded transactions of the
// analysis window.
func (s *Service) transactions(userID uuid.UUID, w Window) ([]models.Transaction, error) {
	from, to := w.Bounds()

	var transactions []models.Transaction
	err := s.db.
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", from.FirstDay(), to.FirstDay()).
		Where("category_id IS NOT NULL").
		Where("excluded_from_budget = ?", false).
		Order("date, id").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// patterns loads all approved patterns of the user.
func (s *Service) patterns(userID uuid.UUID) ([]models.Pattern, error) {
	var patterns []models.Pattern
	err := s.db.
		Where("user_id = ?", userID).
		Where("approved = ?", true).
		Find(&patterns).Error
	if err != nil {
		return nil, err
	}

	return patterns, nil
}

// persist upserts the category budget for a projection and appends the edit
// history entry, in one database transaction per category.
func (s *Service) persist(userID uuid.UUID, year int, projection Projection, edit models.BudgetEdit) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where(&models.CategoryBudget{
			UserID:     userID,
			CategoryID: projection.Key.CategoryID,
			Year:       year,
		})
		if projection.Key.SubCategoryID.Valid {
			q = q.Where("sub_category_id = ?", projection.Key.SubCategoryID.UUID)
		} else {
			q = q.Where("sub_category_id IS NULL")
		}

		var budget models.CategoryBudget
		err := q.First(&budget).Error
		if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
			return err
		}

		budget.UserID = userID
		budget.CategoryID = projection.Key.CategoryID
		budget.SubCategoryID = projection.Key.SubCategoryID
		budget.Year = year
		budget.BudgetType = projection.BudgetType
		budget.FixedAmount = projection.FixedAmount
		budget.Months = projection.Months

		if budget.ID == uuid.Nil {
			err = tx.Create(&budget).Error
		} else {
			err = tx.Save(&budget).Error
		}
		if err != nil {
			return err
		}

		edit.CategoryBudgetID = budget.ID
		return tx.Create(&edit).Error
	})
}
