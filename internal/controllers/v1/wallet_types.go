package v1

import (
	"github.com/catatduitmu/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type WalletEditable struct {
	Name           string            `json:"name" example:"BCA"`                     // Name of the wallet
	Type           models.WalletType `json:"type" example:"bank" default:"bank"`     // One of: bank, e-wallet, cash
	InitialBalance decimal.Decimal   `json:"initialBalance" example:"500000"`        // The balance of the wallet before any transactions
	Color          string            `json:"color" example:"bg-blue-600" default:""` // Display color. Defaults by wallet type when unset
}

// model returns the database resource for the API representation of the editable fields
func (editable WalletEditable) model() models.Wallet {
	return models.Wallet{
		Name:           editable.Name,
		Type:           editable.Type,
		InitialBalance: editable.InitialBalance,
		Color:          editable.Color,
	}
}

// merge applies a partial update to the current state of a wallet. Only the
// fields named in setFields are taken from the update, so that the BeforeSave
// hook validates the state that actually gets persisted.
func (editable WalletEditable) merge(current models.Wallet, setFields []any) models.Wallet {
	merged := current

	if slices.Contains(setFields, "Name") {
		merged.Name = editable.Name
	}
	if slices.Contains(setFields, "Type") {
		merged.Type = editable.Type
	}
	if slices.Contains(setFields, "InitialBalance") {
		merged.InitialBalance = editable.InitialBalance
	}
	if slices.Contains(setFields, "Color") {
		merged.Color = editable.Color
	}

	return merged
}

// Wallet is the representation of a Wallet in API v1.
type Wallet struct {
	models.DefaultModel
	WalletEditable
	Balance decimal.Decimal `json:"balance" example:"750000"` // Current balance, maintained by the server
	Links   WalletLinks     `json:"links"`
}

type WalletListResponse struct {
	Data       []Wallet    `json:"data"`                                                          // List of wallets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type WalletCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []WalletResponse `json:"data"`                                                          // List of created Wallets
}

func (w *WalletCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	w.Data = append(w.Data, WalletResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type WalletResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this wallet
	Data  *Wallet `json:"data"`                                                          // The Wallet data, if creation was successful
}

type WalletQueryFilter struct {
	Name   string            `form:"name"`                       // Name of the wallet
	Type   models.WalletType `form:"type"`                       // Type of the wallet
	Offset uint              `form:"offset" filterField:"false"` // The offset of the first Wallet returned. Defaults to 0.
	Limit  int               `form:"limit" filterField:"false"`  // Maximum number of Wallets to return. Defaults to 50.
}

func (f WalletQueryFilter) model() models.Wallet {
	return models.Wallet{
		Name: f.Name,
		Type: f.Type,
	}
}
