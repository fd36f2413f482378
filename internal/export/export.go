// Package export renders a user's full ledger for download, either as a JSON
// snapshot or as CSV.
package export

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/catatduitmu/backend/internal/format"
	"github.com/catatduitmu/backend/internal/models"
	"gorm.io/gorm"
)

// Snapshot is the JSON export of a user's ledger.
type Snapshot struct {
	ExportDate   time.Time       `json:"exportDate"`
	User         string          `json:"user"`
	Wallets      json.RawMessage `json:"wallets"`
	Transactions json.RawMessage `json:"transactions"`
}

// JSON builds the JSON snapshot for a user.
func JSON(db *gorm.DB, userID string) (Snapshot, error) {
	wallets, err := models.Wallet{}.Export(db, userID)
	if err != nil {
		return Snapshot{}, err
	}

	transactions, err := models.Transaction{}.Export(db, userID)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		ExportDate:   time.Now().In(time.UTC),
		User:         userID,
		Wallets:      wallets,
		Transactions: transactions,
	}, nil
}

// CSVHeader is the first row of the CSV export.
const CSVHeader = `Tanggal,Tipe,Kategori,Deskripsi,Jumlah,Dompet`

// CSV renders all transactions of a user as CSV, newest first. Every value
// is quoted, the amount is the plain decimal string and the date uses the
// long Indonesian format. A transaction whose wallet was deleted renders the
// wallet name as "-".
func CSV(db *gorm.DB, userID string) (string, error) {
	var transactions []models.Transaction
	err := db.Where(&models.Transaction{UserID: userID}).Order("datetime(date) DESC").Find(&transactions).Error
	if err != nil {
		return "", err
	}

	var wallets []models.Wallet
	err = db.Where(&models.Wallet{UserID: userID}).Find(&wallets).Error
	if err != nil {
		return "", err
	}

	names := make(map[string]string, len(wallets))
	for _, w := range wallets {
		names[w.ID.String()] = w.Name
	}

	var b strings.Builder
	b.WriteString(CSVHeader + "\n")

	for _, t := range transactions {
		name, ok := names[t.WalletID.String()]
		if !ok {
			name = "-"
		}

		row := []string{
			format.LongDate(t.Date),
			string(t.Type),
			t.Category,
			t.Description,
			t.Amount.String(),
			name,
		}

		for i, value := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(value))
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// quote wraps a value in double quotes, doubling embedded quotes as per RFC
// 4180.
func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
