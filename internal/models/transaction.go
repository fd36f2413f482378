package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionType determines the sign with which a transaction affects the
// balance of its wallet.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense record.
//
// WalletID deliberately carries no foreign key constraint: deleting a wallet
// does not delete its transactions, so the reference may dangle.
type Transaction struct {
	DefaultModel
	UserID      string          `json:"userId" gorm:"index"` // Email of the owning user
	WalletID    uuid.UUID       `json:"walletId"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Effect is the signed amount with which the transaction contributes to its
// wallet's balance.
func (t Transaction) Effect() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}

	return t.Amount.Neg()
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave validates the transaction and normalizes its fields.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)

	if !slices.Contains([]TransactionType{TransactionTypeIncome, TransactionTypeExpense}, t.Type) {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if t.Category == "" {
		return ErrTransactionCategoryEmpty
	}

	if t.WalletID == uuid.Nil {
		return ErrTransactionWalletUnset
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// Export returns all transactions for a user as JSON.
func (Transaction) Export(db *gorm.DB, userID string) (json.RawMessage, error) {
	var transactions []Transaction
	err := db.Where(&Transaction{UserID: userID}).Order("datetime(date) DESC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&transactions)
}
