package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletmill/backend/internal/budget"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/internal/types"
	wm_uuid "github.com/walletmill/backend/internal/uuid"
)

// RecomputeEditable is the request body to recompute all budgets of a user.
type RecomputeEditable struct {
	UserID          uuid.UUID `json:"userId" binding:"required" example:"f81566d9-af4d-4f13-9830-c62c4b5e4c7e"` // The user to recompute budgets for
	TargetYear      int       `json:"targetYear" example:"2026"`                                                // The year the budgets are projected for
	MonthsToAnalyze int       `json:"monthsToAnalyze" example:"6" default:"6"`                                  // Length of the analysis window, defaults to 6
}

// RecomputeResponse is the response to a full recomputation.
type RecomputeResponse struct {
	Error *string                    `json:"error"` // The error, if any occurred
	Data  *budget.RecomputeAllResult `json:"data"`  // The recomputation outcome
}

// RecomputeCategoryEditable is the request body to recompute the budget of a
// single category, e.g. after excluding transactions.
type RecomputeCategoryEditable struct {
	UserID          uuid.UUID  `json:"userId" binding:"required" example:"f81566d9-af4d-4f13-9830-c62c4b5e4c7e"`
	CategoryID      uuid.UUID  `json:"categoryId" binding:"required" example:"c1a96ae4-80e3-4827-8ed0-c7656f224fee"`
	SubCategoryID   *uuid.UUID `json:"subCategoryId" example:"d7302ef0-7b03-4a6b-9abc-7f06d1d2b9fa"` // Unset for income categories
	Reason          string     `json:"reason" example:"user excluded transactions" default:""`
	TargetYear      int        `json:"targetYear" example:"2026"`
	MonthsToAnalyze int        `json:"monthsToAnalyze" example:"6" default:"6"`
}

// RecomputeCategoryResponse is the response to a single-category
// recomputation.
type RecomputeCategoryResponse struct {
	Error *string                    `json:"error"`
	Data  *budget.RecomputeOneResult `json:"data"`
}

type CategoryBudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"` // The category budget itself
}

// CategoryBudget is the API representation of a computed budget.
type CategoryBudget struct {
	models.DefaultModel
	UserID        uuid.UUID           `json:"userId"`
	CategoryID    uuid.UUID           `json:"categoryId"`
	SubCategoryID *uuid.UUID          `json:"subCategoryId"`
	Year          int                 `json:"year"`
	BudgetType    models.BudgetType   `json:"budgetType" example:"fixed"`
	FixedAmount   decimal.Decimal     `json:"fixedAmount"`
	Months        types.MonthAmounts  `json:"months"`
	Links         CategoryBudgetLinks `json:"links"`
}

// newCategoryBudget returns the API representation of the resource.
func newCategoryBudget(c *gin.Context, model models.CategoryBudget) CategoryBudget {
	url := c.GetString(string(models.DBContextURL))

	var subCategoryID *uuid.UUID
	if model.SubCategoryID.Valid {
		id := model.SubCategoryID.UUID
		subCategoryID = &id
	}

	return CategoryBudget{
		DefaultModel:  model.DefaultModel,
		UserID:        model.UserID,
		CategoryID:    model.CategoryID,
		SubCategoryID: subCategoryID,
		Year:          model.Year,
		BudgetType:    model.BudgetType,
		FixedAmount:   model.FixedAmount,
		Months:        model.Months,
		Links: CategoryBudgetLinks{
			Self: fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
		},
	}
}

// CategoryBudgetListResponse is the response to a budget list request.
type CategoryBudgetListResponse struct {
	Data  []CategoryBudget `json:"data"`  // List of resources
	Error *string          `json:"error"` // The error, if any occurred
}

// BudgetEdit is the API representation of one edit history entry.
type BudgetEdit struct {
	models.DefaultModel
	ChangeType       models.ChangeType `json:"changeType" example:"automatic"`
	Reason           string            `json:"reason"`
	BaseAverage      decimal.Decimal   `json:"baseAverage"`
	TransactionCount int               `json:"transactionCount"`
	PatternCount     int               `json:"patternCount"`
}

func newBudgetEdit(model models.BudgetEdit) BudgetEdit {
	return BudgetEdit{
		DefaultModel:     model.DefaultModel,
		ChangeType:       model.ChangeType,
		Reason:           model.Reason,
		BaseAverage:      model.BaseAverage,
		TransactionCount: model.TransactionCount,
		PatternCount:     model.PatternCount,
	}
}

// CategoryBudgetDetail is a budget together with its edit history.
type CategoryBudgetDetail struct {
	CategoryBudget
	Edits []BudgetEdit `json:"edits"`
}

// CategoryBudgetResponse is the response to a budget detail request.
type CategoryBudgetResponse struct {
	Data  *CategoryBudgetDetail `json:"data"`
	Error *string               `json:"error"`
}

// CategoryBudgetQueryFilter contains the filters for budget list requests.
type CategoryBudgetQueryFilter struct {
	UserID wm_uuid.UUID `form:"user"` // Filter by user ID
	Year   int          `form:"year"` // Filter by target year
}

func (f CategoryBudgetQueryFilter) model() models.CategoryBudget {
	return models.CategoryBudget{
		UserID: f.UserID.UUID,
		Year:   f.Year,
	}
}
