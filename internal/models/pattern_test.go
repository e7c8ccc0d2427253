package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/internal/types"
)

func (suite *TestSuiteStandard) TestPatternTrimWhitespace() {
	pattern := suite.createTestPattern(models.Pattern{
		UserID:     uuid.New(),
		Name:       " Netflix subscription ",
		Recurrence: models.RecurrenceMonthly,
	})

	assert.Equal(suite.T(), "Netflix subscription", pattern.Name)
}

func (suite *TestSuiteStandard) TestPatternNormalizesSchedule() {
	pattern := suite.createTestPattern(models.Pattern{
		UserID:          uuid.New(),
		Name:            "Water bill",
		Recurrence:      models.RecurrenceBiMonthly,
		ScheduledMonths: types.MonthSet{11, 3, 3, 0, 14, 1},
	})

	assert.Equal(suite.T(), types.MonthSet{1, 3, 11}, pattern.ScheduledMonths)
}

func (suite *TestSuiteStandard) TestPatternAmountRangeInverted() {
	err := models.DB.Create(&models.Pattern{
		UserID:     uuid.New(),
		Name:       "Broken range",
		Recurrence: models.RecurrenceMonthly,
		Matcher: models.PatternMatcher{
			AmountMin: decimal.NewFromInt(100),
			AmountMax: decimal.NewFromInt(50),
		},
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrAmountRangeInverted)
}

func (suite *TestSuiteStandard) TestPatternZeroMaxIsNotInverted() {
	_ = suite.createTestPattern(models.Pattern{
		UserID:     uuid.New(),
		Name:       "Open range",
		Recurrence: models.RecurrenceMonthly,
		Matcher: models.PatternMatcher{
			AmountMin: decimal.NewFromInt(100),
		},
	})
}

func (suite *TestSuiteStandard) TestPatternMatcherRoundTrip() {
	categoryID := uuid.New()
	subCategoryID := uuid.New()

	pattern := suite.createTestPattern(models.Pattern{
		UserID:     uuid.New(),
		Name:       "Gym membership",
		Recurrence: models.RecurrenceMonthly,
		Approved:   true,
		Matcher: models.PatternMatcher{
			Description: "URBAN SPORTS*",
			AmountMin:   decimal.NewFromInt(29),
			AmountMax:   decimal.NewFromInt(59),
			Category:    types.CategoryRef{ID: categoryID.String()},
			SubCategory: &types.CategoryRef{ID: subCategoryID.String(), Name: "Fitness"},
		},
	})

	var loaded models.Pattern
	err := models.DB.First(&loaded, pattern.ID).Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), "URBAN SPORTS*", loaded.Matcher.Description)
	assert.True(suite.T(), loaded.Matcher.AmountMin.Equal(decimal.NewFromInt(29)))
	assert.True(suite.T(), loaded.Matcher.AmountMax.Equal(decimal.NewFromInt(59)))
	assert.Equal(suite.T(), categoryID.String(), loaded.Matcher.Category.ID)
	assert.NotNil(suite.T(), loaded.Matcher.SubCategory)
	assert.Equal(suite.T(), "Fitness", loaded.Matcher.SubCategory.Name)
}
