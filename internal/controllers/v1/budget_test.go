package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/walletmill/backend/internal/controllers/v1"
	"github.com/walletmill/backend/internal/models"
	"github.com/walletmill/backend/test"
)

// createHistory creates six months of 2025 history in one category for the
// user and returns the category ID.
func createHistory(t *testing.T, userID uuid.UUID, monthlyAmount int64) uuid.UUID {
	category := models.Category{Name: uuid.NewString()}
	require.Nil(t, models.DB.Create(&category).Error)
	categoryID := category.ID

	for month := time.July; month <= time.December; month++ {
		err := models.DB.Create(&models.Transaction{
			UserID:      userID,
			CategoryID:  uuid.NullUUID{UUID: categoryID, Valid: true},
			Date:        time.Date(2025, month, 15, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.NewFromInt(-monthlyAmount),
			Description: "RESTAURANT MILANO",
		}).Error
		require.Nil(t, err)
	}

	return categoryID
}

// recompute runs a full recomputation via the API and returns the response.
func recompute(t *testing.T, editable v1.RecomputeEditable, expectedStatus ...int) v1.RecomputeResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets/recompute", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RecomputeResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestRecompute() {
	userID := uuid.New()
	categoryID := createHistory(suite.T(), userID, 200)

	response := recompute(suite.T(), v1.RecomputeEditable{
		UserID:     userID,
		TargetYear: 2026,
	})

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 1, response.Data.UpdatedCount)
	assert.Len(suite.T(), response.Data.Months, 12)

	var b models.CategoryBudget
	err := models.DB.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&b).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BudgetTypeFixed, b.BudgetType)
	assert.True(suite.T(), b.FixedAmount.Equal(decimal.NewFromInt(200)), "got %s", b.FixedAmount)
}

func (suite *TestSuiteStandard) TestRecomputeInvalidBody() {
	tests := []struct {
		name string
		body any
	}{
		{"Broken JSON", `{ broken`},
		{"Missing user ID", map[string]any{"targetYear": 2026}},
		{"Empty body", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets/recompute", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestRecomputeYearRequired() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets/recompute", v1.RecomputeEditable{
		UserID: uuid.New(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.RecomputeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, "targetYear")
}

func (suite *TestSuiteStandard) TestRecomputeDBClosed() {
	suite.CloseDB()

	recompute(suite.T(), v1.RecomputeEditable{
		UserID:     uuid.New(),
		TargetYear: 2026,
	}, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestRecomputeCategory() {
	userID := uuid.New()
	categoryID := createHistory(suite.T(), userID, 300)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets/recompute-category", v1.RecomputeCategoryEditable{
		UserID:     userID,
		CategoryID: categoryID,
		Reason:     "user excluded transactions",
		TargetYear: 2026,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RecomputeCategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), models.BudgetTypeFixed, response.Data.BudgetType)
	require.NotNil(suite.T(), response.Data.RecalculatedAmount)
	assert.True(suite.T(), response.Data.RecalculatedAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(suite.T(), 6, response.Data.TransactionCount)
}

func (suite *TestSuiteStandard) TestRecomputeCategoryInvalidBody() {
	tests := []struct {
		name string
		body any
	}{
		{"Broken JSON", `{ broken`},
		{"Missing category ID", map[string]any{"userId": uuid.New().String(), "targetYear": 2026}},
		{"Missing year", map[string]any{"userId": uuid.New().String(), "categoryId": uuid.New().String()}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets/recompute-category", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetBudgets() {
	userID := uuid.New()
	_ = createHistory(suite.T(), userID, 200)
	otherUser := uuid.New()
	_ = createHistory(suite.T(), otherUser, 100)

	_ = recompute(suite.T(), v1.RecomputeEditable{UserID: userID, TargetYear: 2026})
	_ = recompute(suite.T(), v1.RecomputeEditable{UserID: otherUser, TargetYear: 2026})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?user=%s", userID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryBudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), userID, response.Data[0].UserID)
	assert.Contains(suite.T(), response.Data[0].Links.Self, "/v1/budgets/")
}

func (suite *TestSuiteStandard) TestGetBudgetsInvalidFilter() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets?user=not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetBudget() {
	userID := uuid.New()
	_ = createHistory(suite.T(), userID, 200)
	_ = recompute(suite.T(), v1.RecomputeEditable{UserID: userID, TargetYear: 2026})

	var b models.CategoryBudget
	require.Nil(suite.T(), models.DB.Where("user_id = ?", userID).First(&b).Error)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", b.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryBudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), b.ID, response.Data.ID)
	require.Len(suite.T(), response.Data.Edits, 1)
	assert.Equal(suite.T(), models.ChangeAutomatic, response.Data.Edits[0].ChangeType)
}

func (suite *TestSuiteStandard) TestGetBudgetNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetBudgetInvalidID() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestBudgetsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestBudgetsOptions() {
	tests := []struct {
		name   string
		path   string
		allow  string
		status int
	}{
		{"List", "", "GET", http.StatusNoContent},
		{"Recompute", "/recompute", "POST", http.StatusNoContent},
		{"Recompute category", "/recompute-category", "POST", http.StatusNoContent},
		{"No budget with this ID", "/" + uuid.New().String(), "", http.StatusNotFound},
		{"Not a UUID", "/not-a-uuid", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, "http://example.com/v1/budgets"+tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.allow != "" {
				assert.Equal(t, tt.allow, r.Header().Get("allow"))
			}
		})
	}
}
