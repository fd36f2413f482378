package v1

import (
	"time"

	"github.com/catatduitmu/backend/internal/models"
	cd_uuid "github.com/catatduitmu/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type TransactionEditable struct {
	WalletID    uuid.UUID              `json:"walletId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"` // ID of the wallet the transaction belongs to
	Type        models.TransactionType `json:"type" example:"expense"`                                  // One of: income, expense
	Category    string                 `json:"category" example:"Makanan"`                              // One of the known categories for the transaction type
	Amount      decimal.Decimal        `json:"amount" example:"50000" minimum:"0.00000001"`             // The amount, always positive. The type determines the sign of the balance effect
	Description string                 `json:"description" example:"Makan siang" default:""`            // A note
	Date        time.Time              `json:"date" example:"2026-07-14T12:00:00Z"`                     // Date of the transaction. Defaults to the creation time
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		WalletID:    editable.WalletID,
		Type:        editable.Type,
		Category:    editable.Category,
		Amount:      editable.Amount,
		Description: editable.Description,
		Date:        editable.Date,
	}
}

// merge combines a partial update with the current state of a transaction.
// Only the fields named in setFields are taken from the update.
func (editable TransactionEditable) merge(current models.Transaction, setFields []any) models.Transaction {
	merged := models.Transaction{
		WalletID:    current.WalletID,
		Type:        current.Type,
		Category:    current.Category,
		Amount:      current.Amount,
		Description: current.Description,
		Date:        current.Date,
	}

	if slices.Contains(setFields, "WalletID") {
		merged.WalletID = editable.WalletID
	}
	if slices.Contains(setFields, "Type") {
		merged.Type = editable.Type
	}
	if slices.Contains(setFields, "Category") {
		merged.Category = editable.Category
	}
	if slices.Contains(setFields, "Amount") {
		merged.Amount = editable.Amount
	}
	if slices.Contains(setFields, "Description") {
		merged.Description = editable.Description
	}
	if slices.Contains(setFields, "Date") {
		merged.Date = editable.Date
	}

	return merged
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	Date      time.Time              `form:"date" filterField:"false"`      // Exact date. Time is ignored.
	FromDate  time.Time              `form:"fromDate" filterField:"false"`  // From this date. Time is ignored.
	UntilDate time.Time              `form:"untilDate" filterField:"false"` // Until this date. Time is ignored.
	Type      models.TransactionType `form:"type"`                          // Type of the transaction
	Category  string                 `form:"category"`                      // Category of the transaction
	WalletID  cd_uuid.UUID           `form:"wallet"`                        // ID of the wallet
	Offset    uint                   `form:"offset" filterField:"false"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit     int                    `form:"limit" filterField:"false"`     // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	// This does not set the date fields since they are handled
	// in the controller function
	return models.Transaction{
		Type:     f.Type,
		Category: f.Category,
		WalletID: f.WalletID.UUID,
	}
}
