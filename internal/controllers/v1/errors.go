package v1

import (
	"errors"
	"net/http"

	"github.com/walletmill/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no category budget matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errYearNotSet = errors.New("the targetYear parameter must be set")
)
