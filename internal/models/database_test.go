package models_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/walletmill/backend/internal/models"
)

func (suite *TestSuiteStandard) TestResourceNotFoundNaming() {
	err := models.DB.First(&models.Category{}, uuid.New()).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "category", "the resource name should be derived from the table name")
}

func (suite *TestSuiteStandard) TestClosedDBReturnsGeneralError() {
	suite.CloseDB()

	err := models.DB.First(&models.Category{}, uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
