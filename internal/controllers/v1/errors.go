package v1

import (
	"errors"
	"net/http"

	"github.com/quote-zero/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
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

// Quote errors
var (
	errOrderInvalid = errors.New("the order parameter must be one of: asc, desc")
	errDateInvalid  = errors.New("dates must be in YYYY-MM-DD or RFC3339 format")
)

// Report errors
var (
	errLocaleInvalid = errors.New("the locale parameter is not a valid BCP 47 language tag")
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)
