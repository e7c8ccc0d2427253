package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletmill/backend/internal/types"
	"gorm.io/gorm"
)

// BudgetType is the representation mode of a category budget.
type BudgetType string

const (
	// BudgetTypeFixed is a single monthly amount applied to all 12 months.
	BudgetTypeFixed BudgetType = "fixed"
	// BudgetTypeVariable is a per-calendar-month schedule, used when
	// non-monthly patterns contribute to the category.
	BudgetTypeVariable BudgetType = "variable"
)

// CategoryBudget is the projected twelve-month budget for one
// (category, subcategory) pair of a user.
//
// It is overwritten on every recompute. The budget type can flip between
// fixed and variable as the set of approved patterns changes.
type CategoryBudget struct {
	DefaultModel
	UserID        uuid.UUID       `gorm:"uniqueIndex:budget_scope"`
	CategoryID    uuid.UUID       `gorm:"uniqueIndex:budget_scope"`
	SubCategoryID uuid.NullUUID   `gorm:"uniqueIndex:budget_scope"` // Unset for income categories
	Year          int             `gorm:"uniqueIndex:budget_scope"`
	BudgetType    BudgetType
	FixedAmount   decimal.Decimal    `gorm:"type:DECIMAL(20,8)"` // Only set for fixed budgets
	Months        types.MonthAmounts // Only set for variable budgets
}

// BeforeSave verifies the budget representation is consistent with its type.
func (b *CategoryBudget) BeforeSave(_ *gorm.DB) error {
	if b.BudgetType == BudgetTypeVariable {
		return b.Months.Validate()
	}

	b.Months = nil
	return nil
}

// ChangeType records what triggered a budget edit.
type ChangeType string

const (
	// ChangeAutomatic is a full automatic recalculation.
	ChangeAutomatic ChangeType = "automatic"
	// ChangeExclusion is a recalculation triggered by the user excluding
	// transactions from budget consideration.
	ChangeExclusion ChangeType = "exclusion"
)

// BudgetEdit is one entry in the edit history of a category budget.
// Entries are append-only and kept for auditing.
type BudgetEdit struct {
	DefaultModel
	CategoryBudget   CategoryBudget `json:"-"`
	CategoryBudgetID uuid.UUID      `gorm:"index"`
	ChangeType       ChangeType
	Reason           string
	BaseAverage      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TransactionCount int
	PatternCount     int
}

func (e *BudgetEdit) BeforeSave(_ *gorm.DB) error {
	e.Reason = strings.TrimSpace(e.Reason)
	return nil
}

func (e *BudgetEdit) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*BudgetEdit)
	return e.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources.
func (e *BudgetEdit) checkIntegrity(tx *gorm.DB, toSave BudgetEdit) error {
	return tx.First(&CategoryBudget{}, toSave.CategoryBudgetID).Error
}
