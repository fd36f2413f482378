package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/catatduitmu/backend/internal/controllers/v1"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/catatduitmu/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// walletBalance reads the current balance of a wallet through the API.
func (suite *TestSuiteStandard) walletBalance(t *testing.T, id uuid.UUID) decimal.Decimal {
	r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/wallets/%s", id), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.WalletResponse
	test.DecodeResponse(t, &r, &response)
	return response.Data.Balance
}

func (suite *TestSuiteStandard) TestTransactionsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, POST", r.Header().Get("allow"))
}

// TestTransactionsCreate verifies that a created transaction is applied to
// the wallet balance.
func (suite *TestSuiteStandard) TestTransactionsCreate() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA", InitialBalance: decimal.NewFromInt(100000)})

	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID:    wallet.Data.ID,
		Type:        models.TransactionTypeExpense,
		Category:    "Makanan",
		Amount:      decimal.NewFromInt(30000),
		Description: "Makan siang",
	})

	data := transaction.Data
	assert.Equal(suite.T(), models.TransactionTypeExpense, data.Type)
	assert.Equal(suite.T(), "Makan siang", data.Description)
	assert.False(suite.T(), data.Date.IsZero(), "date was not defaulted")
	assert.Equal(suite.T(), fmt.Sprintf("https://example.com/v1/transactions/%s", data.ID), data.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("https://example.com/v1/wallets/%s", wallet.Data.ID), data.Links.Wallet)

	balance := suite.walletBalance(suite.T(), wallet.Data.ID)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(70000)), "balance is %s", balance)
}

func (suite *TestSuiteStandard) TestTransactionsCreateInvalid() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "amount": 2" }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{
			"Unknown category",
			[]v1.TransactionEditable{{WalletID: wallet.Data.ID, Type: models.TransactionTypeExpense, Category: "Mobil", Amount: decimal.NewFromInt(1000)}},
			http.StatusBadRequest,
		},
		{
			"Category of the other type",
			[]v1.TransactionEditable{{WalletID: wallet.Data.ID, Type: models.TransactionTypeExpense, Category: "Gaji", Amount: decimal.NewFromInt(1000)}},
			http.StatusBadRequest,
		},
		{
			"Amount negative",
			[]v1.TransactionEditable{{WalletID: wallet.Data.ID, Type: models.TransactionTypeExpense, Category: "Makanan", Amount: decimal.NewFromInt(-1000)}},
			http.StatusBadRequest,
		},
		{
			"No wallet with this ID",
			[]v1.TransactionEditable{{WalletID: uuid.New(), Type: models.TransactionTypeExpense, Category: "Makanan", Amount: decimal.NewFromInt(1000)}},
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing transaction", transaction.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"No transaction with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID (string)", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsListFilter() {
	bca := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})
	gopay := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "GoPay"})

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: bca.Data.ID,
		Type:     models.TransactionTypeIncome,
		Category: "Gaji",
		Amount:   decimal.NewFromInt(5000000),
		Date:     time.Date(2026, 3, 25, 9, 0, 0, 0, time.UTC),
	})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: bca.Data.ID,
		Type:     models.TransactionTypeExpense,
		Category: "Makanan",
		Amount:   decimal.NewFromInt(30000),
		Date:     time.Date(2026, 3, 26, 12, 0, 0, 0, time.UTC),
	})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: gopay.Data.ID,
		Type:     models.TransactionTypeExpense,
		Category: "Transportasi",
		Amount:   decimal.NewFromInt(15000),
		Date:     time.Date(2026, 3, 27, 8, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 3},
		{"By type income", "type=income", 1},
		{"By type expense", "type=expense", 2},
		{"By category", "category=Makanan", 1},
		{"By wallet", "wallet=" + gopay.Data.ID.String(), 1},
		{"Exact date", "date=2026-03-26T00:00:00Z", 1},
		{"From date", "fromDate=2026-03-26T00:00:00Z", 2},
		{"Until date", "untilDate=2026-03-26T00:00:00Z", 2},
		{"Date range without match", "fromDate=2026-04-01T00:00:00Z", 0},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsListInvalidType() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?type=transfer", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionsListNewestFirst verifies the ordering of the transaction
// list.
func (suite *TestSuiteStandard) TestTransactionsListNewestFirst() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: wallet.Data.ID,
		Category: "Makanan",
		Date:     time.Date(2026, 3, 25, 9, 0, 0, 0, time.UTC),
	})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: wallet.Data.ID,
		Category: "Belanja",
		Date:     time.Date(2026, 3, 27, 9, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	if assert.Len(suite.T(), response.Data, 2) {
		assert.Equal(suite.T(), "Belanja", response.Data[0].Category)
		assert.Equal(suite.T(), "Makanan", response.Data[1].Category)
	}
}

// TestTransactionsUpdate verifies that patching a transaction corrects the
// wallet balance.
func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA", InitialBalance: decimal.NewFromInt(100000)})
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: wallet.Data.ID,
		Type:     models.TransactionTypeExpense,
		Category: "Makanan",
		Amount:   decimal.NewFromInt(30000),
	})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"amount": "10000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(suite.T(), "Makanan", response.Data.Category, "unset fields must keep their values")

	balance := suite.walletBalance(suite.T(), wallet.Data.ID)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(90000)), "balance is %s", balance)
}

// TestTransactionsUpdateWallet verifies that moving a transaction to another
// wallet moves its balance effect.
func (suite *TestSuiteStandard) TestTransactionsUpdateWallet() {
	source := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA", InitialBalance: decimal.NewFromInt(100000)})
	target := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "GoPay", InitialBalance: decimal.NewFromInt(50000)})

	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: source.Data.ID,
		Type:     models.TransactionTypeExpense,
		Category: "Makanan",
		Amount:   decimal.NewFromInt(20000),
	})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"walletId": target.Data.ID.String(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	sourceBalance := suite.walletBalance(suite.T(), source.Data.ID)
	assert.True(suite.T(), sourceBalance.Equal(decimal.NewFromInt(100000)), "source balance is %s", sourceBalance)

	targetBalance := suite.walletBalance(suite.T(), target.Data.ID)
	assert.True(suite.T(), targetBalance.Equal(decimal.NewFromInt(30000)), "target balance is %s", targetBalance)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateInvalid() {
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "amount": 2" }`, http.StatusBadRequest},
		{"Unknown category", map[string]any{"category": "Mobil"}, http.StatusBadRequest},
		{"Type flip without category", map[string]any{"type": "income"}, http.StatusBadRequest},
		{"Amount zero", map[string]any{"amount": "0"}, http.StatusBadRequest},
		{"Unknown wallet", map[string]any{"walletId": uuid.New().String()}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, transaction.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestTransactionsDelete verifies that deleting a transaction reverts its
// balance effect.
func (suite *TestSuiteStandard) TestTransactionsDelete() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA", InitialBalance: decimal.NewFromInt(100000)})
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: wallet.Data.ID,
		Type:     models.TransactionTypeExpense,
		Category: "Makanan",
		Amount:   decimal.NewFromInt(30000),
	})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	balance := suite.walletBalance(suite.T(), wallet.Data.ID)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(100000)), "balance is %s", balance)

	r = test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
