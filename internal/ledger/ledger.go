// Package ledger keeps wallet balances consistent with the transaction
// history.
//
// Every mutation runs in a single database transaction and adjusts the
// cached wallet balance with a relative update, so concurrent mutations on
// the same wallet cannot lose updates and a failed step rolls back the
// whole operation.
package ledger

import (
	"errors"

	"github.com/catatduitmu/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OnWalletDelete selects what happens to the transactions of a wallet when
// the wallet is deleted.
type OnWalletDelete string

const (
	// OrphanTransactions keeps the transactions with a dangling wallet
	// reference. This is the default and matches the behavior of the web app.
	OrphanTransactions OnWalletDelete = "orphan"
	CascadeDelete      OnWalletDelete = "cascade"
	Block              OnWalletDelete = "block"
)

var (
	ErrWalletDeleteBlocked = errors.New("the wallet still has transactions and cannot be deleted")
	ErrDeletePolicyInvalid = errors.New("the wallet deletion policy must be one of: orphan, cascade, block")
)

// CreateTransaction records a new transaction and applies its effect to the
// wallet balance. The wallet must exist and belong to the transaction's user.
func CreateTransaction(db *gorm.DB, transaction *models.Transaction) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		err := tx.First(&wallet, "id = ? AND user_id = ?", transaction.WalletID, transaction.UserID).Error
		if err != nil {
			return err
		}

		err = tx.Create(transaction).Error
		if err != nil {
			return err
		}

		return adjustBalance(tx, wallet.ID, transaction.Effect())
	})
	if err != nil {
		return err
	}

	operations.WithLabelValues("create", string(transaction.Type)).Inc()
	return nil
}

// UpdateTransaction replaces the editable fields of a transaction and
// corrects the balances of both the old and the new wallet.
//
// The old wallet may already have been deleted since transactions are not
// cascade-deleted. In that case the revert is skipped, the apply on the new
// wallet still happens.
func UpdateTransaction(db *gorm.DB, transaction *models.Transaction, update models.Transaction) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		// Revert the old effect on the old wallet. A missing wallet is
		// tolerated here: adjustBalance on a deleted wallet updates no rows.
		err := adjustBalance(tx, transaction.WalletID, transaction.Effect().Neg())
		if err != nil {
			return err
		}

		// The new wallet must exist and be owned by the same user.
		var wallet models.Wallet
		err = tx.First(&wallet, "id = ? AND user_id = ?", update.WalletID, transaction.UserID).Error
		if err != nil {
			return err
		}

		transaction.WalletID = update.WalletID
		transaction.Type = update.Type
		transaction.Category = update.Category
		transaction.Amount = update.Amount
		transaction.Description = update.Description
		if !update.Date.IsZero() {
			transaction.Date = update.Date
		}

		err = tx.Save(transaction).Error
		if err != nil {
			return err
		}

		return adjustBalance(tx, transaction.WalletID, transaction.Effect())
	})
	if err != nil {
		return err
	}

	operations.WithLabelValues("update", string(transaction.Type)).Inc()
	return nil
}

// DeleteTransaction removes a transaction and reverts its effect on the
// wallet balance. A wallet that no longer exists is a tolerated no-op on the
// balance side, the transaction row is removed regardless.
func DeleteTransaction(db *gorm.DB, transaction *models.Transaction) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		err := adjustBalance(tx, transaction.WalletID, transaction.Effect().Neg())
		if err != nil {
			return err
		}

		return tx.Delete(transaction).Error
	})
	if err != nil {
		return err
	}

	operations.WithLabelValues("delete", string(transaction.Type)).Inc()
	return nil
}

// DeleteWallet removes a wallet according to the given policy.
//
// The balance effects of the wallet's own transactions are not reverted
// anywhere, they disappear with the wallet.
func DeleteWallet(db *gorm.DB, wallet *models.Wallet, policy OnWalletDelete) error {
	if policy == "" {
		policy = OrphanTransactions
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		switch policy {
		case OrphanTransactions:
			// Transactions keep their dangling wallet reference. Reads that
			// join the wallet name render it as unknown.

		case CascadeDelete:
			err := tx.Where(&models.Transaction{WalletID: wallet.ID}).Delete(&models.Transaction{}).Error
			if err != nil {
				return err
			}

		case Block:
			var count int64
			err := tx.Model(&models.Transaction{}).Where(&models.Transaction{WalletID: wallet.ID}).Count(&count).Error
			if err != nil {
				return err
			}

			if count > 0 {
				return ErrWalletDeleteBlocked
			}

		default:
			return ErrDeletePolicyInvalid
		}

		return tx.Delete(wallet).Error
	})
	if err != nil {
		return err
	}

	operations.WithLabelValues("delete_wallet", string(policy)).Inc()
	return nil
}

// RecalculateBalance repairs the cached wallet balance from the transaction
// history. It is the recovery path when the cache is suspected to have
// drifted, e.g. after a partially failed mutation was retried.
func RecalculateBalance(db *gorm.DB, wallet *models.Wallet) error {
	return db.Transaction(func(tx *gorm.DB) error {
		derived, err := wallet.BalanceFromTransactions(tx)
		if err != nil {
			return err
		}

		wallet.Balance = derived
		return tx.Model(wallet).Update("balance", derived).Error
	})
}

// ShiftBalance applies a relative change to the cached balance of a wallet.
// It is used when the initial balance of a wallet is edited, so that the
// cached balance keeps agreeing with the transaction history.
func ShiftBalance(db *gorm.DB, walletID uuid.UUID, delta decimal.Decimal) error {
	return adjustBalance(db, walletID, delta)
}

// adjustBalance applies a relative balance change to a wallet. It does not
// fail when the wallet does not exist. UpdateColumn is used so that the
// wallet hooks, which validate user-editable fields, do not run for the
// cache update.
func adjustBalance(tx *gorm.DB, walletID uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error
}
