package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// WalletType is the kind of account a wallet represents.
type WalletType string

const (
	WalletTypeBank    WalletType = "bank"
	WalletTypeEWallet WalletType = "e-wallet"
	WalletTypeCash    WalletType = "cash"
)

// Wallet represents a balance-holding account, e.g. a bank account or cash.
type Wallet struct {
	DefaultModel
	UserID         string          `json:"userId" gorm:"index"` // Email of the owning user
	Name           string          `json:"name"`
	Type           WalletType      `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance" gorm:"type:DECIMAL(20,8)"`
	Balance        decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)"` // Kept in sync with the transactions by the ledger
	Color          string          `json:"color"` // Presentation only, not invariant-bearing
}

// DefaultWalletColor returns the display color the apps use for a wallet type.
func DefaultWalletColor(t WalletType) string {
	switch t {
	case WalletTypeBank:
		return "bg-blue-600"
	case WalletTypeEWallet:
		return "bg-purple-600"
	default:
		return "bg-green-600"
	}
}

// BeforeSave validates the wallet and normalizes its strings.
func (w *Wallet) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return ErrWalletNameEmpty
	}

	if w.Type == "" {
		w.Type = WalletTypeBank
	}

	if !slices.Contains([]WalletType{WalletTypeBank, WalletTypeEWallet, WalletTypeCash}, w.Type) {
		return ErrWalletTypeInvalid
	}

	if w.Color == "" {
		w.Color = DefaultWalletColor(w.Type)
	}

	return nil
}

// BeforeCreate initializes the balance cache with the initial balance.
func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	_ = w.DefaultModel.BeforeCreate(tx)

	w.Balance = w.InitialBalance
	return nil
}

// Transactions returns all surviving transactions referencing this wallet.
func (w Wallet) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where(&Transaction{WalletID: w.ID}).Find(&transactions).Error
	return transactions, err
}

// BalanceFromTransactions derives the wallet balance from the transaction
// history: the initial balance plus the signed effect of every surviving
// transaction. This is the source of truth the cached Balance column must
// agree with.
func (w Wallet) BalanceFromTransactions(db *gorm.DB) (decimal.Decimal, error) {
	transactions, err := w.Transactions(db)
	if err != nil {
		return decimal.Zero, err
	}

	balance := w.InitialBalance
	for _, t := range transactions {
		balance = balance.Add(t.Effect())
	}

	return balance, nil
}

// Export returns all wallets for a user as JSON.
func (Wallet) Export(db *gorm.DB, userID string) (json.RawMessage, error) {
	var wallets []Wallet
	err := db.Where(&Wallet{UserID: userID}).Order("datetime(created_at) DESC").Find(&wallets).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&wallets)
}
