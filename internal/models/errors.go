package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors for wallets.
var (
	ErrWalletNameEmpty   = errors.New("the wallet name must not be empty")
	ErrWalletTypeInvalid = errors.New("the wallet type must be one of: bank, e-wallet, cash")
)

// Validation errors for transactions.
var (
	ErrTransactionAmountNotPositive = errors.New("the transaction amount must be positive")
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be either income or expense")
	ErrTransactionCategoryEmpty     = errors.New("the transaction category must not be empty")
	ErrTransactionWalletUnset       = errors.New("the transaction must reference a wallet")
)
