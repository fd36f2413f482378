package v1

import (
	"errors"
	"net/http"

	"github.com/catatduitmu/backend/internal/ledger"
	"github.com/catatduitmu/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, ledger.ErrWalletDeleteBlocked) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// Transaction errors
var (
	errTransactionTypeInvalid     = errors.New("the transaction type must be income or expense")
	errTransactionCategoryUnknown = errors.New("the category is not in the list of known categories for this transaction type")
)

// Report errors
var (
	errMonthNotSetInQuery = errors.New("the month query parameter must be set")
)

// Telegram errors
var (
	errTelegramIDNotSet = errors.New("the telegramId must be set")
)
