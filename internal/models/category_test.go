package models_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/walletmill/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	category := suite.createTestCategory(models.Category{
		Name: " Dining ",
		Note: " eating out ",
	})

	assert.Equal(suite.T(), "Dining", category.Name)
	assert.Equal(suite.T(), "eating out", category.Note)
}

func (suite *TestSuiteStandard) TestSubCategoryNeedsCategory() {
	err := models.DB.Create(&models.SubCategory{
		CategoryID: uuid.New(),
		Name:       "Restaurants",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSubCategoryCreate() {
	category := suite.createTestCategory(models.Category{Name: "Dining"})

	subCategory := suite.createTestSubCategory(models.SubCategory{
		CategoryID: category.ID,
		Name:       " Restaurants ",
	})

	assert.Equal(suite.T(), "Restaurants", subCategory.Name)
	assert.Equal(suite.T(), category.ID, subCategory.CategoryID)
}
