// Package v1 implements the v1 API of walletmill.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/walletmill/backend/internal/budget"
	"github.com/walletmill/backend/internal/httputil"
	"github.com/walletmill/backend/internal/models"
)

func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgets)
		r.GET("", GetBudgets)
	}
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
	}
	{
		r.OPTIONS("/recompute", OptionsRecompute)
		r.POST("/recompute", Recompute)
	}
	{
		r.OPTIONS("/recompute-category", OptionsRecomputeCategory)
		r.POST("/recompute-category", RecomputeCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgets(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.CategoryBudget{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get budgets
// @Description	Returns a list of computed category budgets
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	CategoryBudgetListResponse
// @Failure		400		{object}	CategoryBudgetListResponse
// @Failure		500		{object}	CategoryBudgetListResponse
// @Router			/v1/budgets [get]
// @Param			user	query		string	false	"Filter by user ID"
// @Param			year	query		int		false	"Filter by target year"
func GetBudgets(c *gin.Context) {
	var filter CategoryBudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoryBudgetListResponse{Error: &s})
		return
	}

	var budgets []models.CategoryBudget
	err := models.DB.Where(filter.model()).Order("category_id, sub_category_id").Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetListResponse{Error: &s})
		return
	}

	data := make([]CategoryBudget, 0, len(budgets))
	for _, b := range budgets {
		data = append(data, newCategoryBudget(c, b))
	}

	c.JSON(http.StatusOK, CategoryBudgetListResponse{Data: data})
}

// @Summary		Get budget
// @Description	Returns a single category budget with its edit history
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	CategoryBudgetResponse
// @Failure		400	{object}	CategoryBudgetResponse
// @Failure		404	{object}	CategoryBudgetResponse
// @Failure		500	{object}	CategoryBudgetResponse
// @Param			id	path		string	true	"ID of the budget"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoryBudgetResponse{Error: &s})
		return
	}

	var model models.CategoryBudget
	err = models.DB.First(&model, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	var edits []models.BudgetEdit
	err = models.DB.Where(&models.BudgetEdit{CategoryBudgetID: model.ID}).Order("created_at").Find(&edits).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	detail := CategoryBudgetDetail{CategoryBudget: newCategoryBudget(c, model)}
	for _, edit := range edits {
		detail.Edits = append(detail.Edits, newBudgetEdit(edit))
	}

	c.JSON(http.StatusOK, CategoryBudgetResponse{Data: &detail})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets/recompute [options]
func OptionsRecompute(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Recompute budgets
// @Description	Recomputes the twelve-month budget of every category of a user from the transaction history and the approved recurring patterns
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	RecomputeResponse
// @Failure		400		{object}	RecomputeResponse
// @Failure		500		{object}	RecomputeResponse
// @Param			body	body		RecomputeEditable	true	"Recomputation parameters"
// @Router			/v1/budgets/recompute [post]
func Recompute(c *gin.Context) {
	var editable RecomputeEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RecomputeResponse{Error: &s})
		return
	}

	if editable.TargetYear == 0 {
		s := errYearNotSet.Error()
		c.JSON(http.StatusBadRequest, RecomputeResponse{Error: &s})
		return
	}

	result, err := budget.NewService(models.DB).RecomputeAll(editable.UserID, editable.TargetYear, editable.MonthsToAnalyze)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecomputeResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RecomputeResponse{Data: &result})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets/recompute-category [options]
func OptionsRecomputeCategory(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Recompute one category budget
// @Description	Recomputes the budget of a single category, preserving an edit history entry with the given reason. Used after transactions were excluded from budget calculation.
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	RecomputeCategoryResponse
// @Failure		400		{object}	RecomputeCategoryResponse
// @Failure		500		{object}	RecomputeCategoryResponse
// @Param			body	body		RecomputeCategoryEditable	true	"Recomputation parameters"
// @Router			/v1/budgets/recompute-category [post]
func RecomputeCategory(c *gin.Context) {
	var editable RecomputeCategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RecomputeCategoryResponse{Error: &s})
		return
	}

	if editable.TargetYear == 0 {
		s := errYearNotSet.Error()
		c.JSON(http.StatusBadRequest, RecomputeCategoryResponse{Error: &s})
		return
	}

	var subCategoryID uuid.NullUUID
	if editable.SubCategoryID != nil {
		subCategoryID = uuid.NullUUID{UUID: *editable.SubCategoryID, Valid: true}
	}

	result, err := budget.NewService(models.DB).RecomputeOne(
		editable.UserID,
		editable.CategoryID,
		subCategoryID,
		editable.Reason,
		editable.TargetYear,
		editable.MonthsToAnalyze,
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecomputeCategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RecomputeCategoryResponse{Data: &result})
}
