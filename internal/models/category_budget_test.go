package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/internal/types"
)

// fullSchedule returns a valid MonthAmounts with the given amount for every
// calendar month.
func fullSchedule(amount int64) types.MonthAmounts {
	schedule := make(types.MonthAmounts, 0, 12)
	for month := 1; month <= 12; month++ {
		schedule = append(schedule, types.MonthAmount{Month: month, Amount: decimal.NewFromInt(amount)})
	}

	return schedule
}

func (suite *TestSuiteStandard) TestCategoryBudgetUnique() {
	userID := uuid.New()
	categoryID := uuid.New()
	subCategoryID := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	_ = suite.createTestCategoryBudget(models.CategoryBudget{
		UserID:        userID,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Year:          2026,
		BudgetType:    models.BudgetTypeFixed,
		FixedAmount:   decimal.NewFromInt(100),
	})

	err := models.DB.Create(&models.CategoryBudget{
		UserID:        userID,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Year:          2026,
		BudgetType:    models.BudgetTypeFixed,
		FixedAmount:   decimal.NewFromInt(200),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrCategoryBudgetNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryBudgetDifferentYearsAllowed() {
	userID := uuid.New()
	categoryID := uuid.New()

	_ = suite.createTestCategoryBudget(models.CategoryBudget{
		UserID:     userID,
		CategoryID: categoryID,
		Year:       2025,
		BudgetType: models.BudgetTypeFixed,
	})

	_ = suite.createTestCategoryBudget(models.CategoryBudget{
		UserID:     userID,
		CategoryID: categoryID,
		Year:       2026,
		BudgetType: models.BudgetTypeFixed,
	})
}

func (suite *TestSuiteStandard) TestCategoryBudgetVariableNeedsFullSchedule() {
	err := models.DB.Create(&models.CategoryBudget{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Year:       2026,
		BudgetType: models.BudgetTypeVariable,
		Months: types.MonthAmounts{
			{Month: 3, Amount: decimal.NewFromInt(1200)},
		},
	}).Error

	assert.ErrorIs(suite.T(), err, types.ErrInvalidMonthAmounts)
}

func (suite *TestSuiteStandard) TestCategoryBudgetFixedDropsSchedule() {
	budget := suite.createTestCategoryBudget(models.CategoryBudget{
		UserID:      uuid.New(),
		CategoryID:  uuid.New(),
		Year:        2026,
		BudgetType:  models.BudgetTypeFixed,
		FixedAmount: decimal.NewFromInt(500),
		Months:      fullSchedule(100),
	})

	var loaded models.CategoryBudget
	err := models.DB.First(&loaded, budget.ID).Error
	assert.Nil(suite.T(), err)
	assert.Empty(suite.T(), loaded.Months)
	assert.True(suite.T(), loaded.FixedAmount.Equal(decimal.NewFromInt(500)))
}

func (suite *TestSuiteStandard) TestCategoryBudgetVariableRoundTrip() {
	budget := suite.createTestCategoryBudget(models.CategoryBudget{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Year:       2026,
		BudgetType: models.BudgetTypeVariable,
		Months:     fullSchedule(150),
	})

	var loaded models.CategoryBudget
	err := models.DB.First(&loaded, budget.ID).Error
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), loaded.Months, 12)
	assert.True(suite.T(), loaded.Months.Amount(7).Equal(decimal.NewFromInt(150)))
}

func (suite *TestSuiteStandard) TestBudgetEditTrimsReason() {
	budget := suite.createTestCategoryBudget(models.CategoryBudget{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Year:       2026,
		BudgetType: models.BudgetTypeFixed,
	})

	edit := suite.createTestBudgetEdit(models.BudgetEdit{
		CategoryBudgetID: budget.ID,
		ChangeType:       models.ChangeExclusion,
		Reason:           " user excluded a refund ",
	})

	assert.Equal(suite.T(), "user excluded a refund", edit.Reason)
}

func (suite *TestSuiteStandard) TestBudgetEditNeedsCategoryBudget() {
	err := models.DB.Create(&models.BudgetEdit{
		CategoryBudgetID: uuid.New(),
		ChangeType:       models.ChangeAutomatic,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
