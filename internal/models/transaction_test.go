package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/walletmill/backend/internal/models"
)

func (suite *TestSuiteStandard) TestTransactionFindTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	transaction := models.Transaction{
		Date: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
	}

	err := transaction.AfterFind(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "transaction.AfterFind failed")
	}

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionSaveTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	transaction := models.Transaction{}
	err := transaction.BeforeSave(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "transaction.BeforeSave failed")
	}

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")

	transaction = models.Transaction{
		Date: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
	}
	err = transaction.BeforeSave(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "transaction.BeforeSave failed")
	}

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		UserID:      uuid.New(),
		Amount:      decimal.NewFromInt(-17),
		Description: " REWE SAGT DANKE  ",
		Note:        " split with flatmate ",
	})

	assert.Equal(suite.T(), "REWE SAGT DANKE", transaction.Description)
	assert.Equal(suite.T(), "split with flatmate", transaction.Note)
}

func (suite *TestSuiteStandard) TestTransactionUncategorized() {
	transaction := suite.createTestTransaction(models.Transaction{
		UserID: uuid.New(),
		Amount: decimal.NewFromInt(-42),
	})

	var loaded models.Transaction
	err := models.DB.First(&loaded, transaction.ID).Error
	assert.Nil(suite.T(), err)
	assert.False(suite.T(), loaded.CategoryID.Valid)
	assert.False(suite.T(), loaded.SubCategoryID.Valid)
}
