package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/catatduitmu/backend/internal/controllers/v1"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/catatduitmu/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestWalletsUnauthorized verifies that the API rejects requests without a
// valid token.
func (suite *TestSuiteStandard) TestWalletsUnauthorized() {
	tests := []struct {
		name   string
		header string
	}{
		{"No token", ""},
		{"Not a bearer token", "Basic dXNlcjpwYXNz"},
		{"Garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/wallets", "", map[string]string{"Authorization": tt.header})
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}
}

// TestWalletsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestWalletsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/wallets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestWalletsOptionsDetail() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No wallet with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Wallet exists", suite.createTestWallet(suite.T(), v1.WalletEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/wallets", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestWalletsCreate() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{
		Name:           "BCA",
		Type:           models.WalletTypeBank,
		InitialBalance: decimal.NewFromInt(500000),
	})

	data := wallet.Data
	assert.Equal(suite.T(), "BCA", data.Name)
	assert.Equal(suite.T(), models.WalletTypeBank, data.Type)
	assert.True(suite.T(), data.Balance.Equal(decimal.NewFromInt(500000)), "balance is %s", data.Balance)
	assert.Equal(suite.T(), "bg-blue-600", data.Color)
	assert.Equal(suite.T(), fmt.Sprintf("https://example.com/v1/wallets/%s", data.ID), data.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("https://example.com/v1/transactions?wallet=%s", data.ID), data.Links.Transactions)
}

func (suite *TestSuiteStandard) TestWalletsCreateInvalid() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "name": 2" }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{"Name empty", []v1.WalletEditable{{Name: "  "}}, http.StatusBadRequest},
		{"Type unknown", []v1.WalletEditable{{Name: "Crypto", Type: "crypto"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/wallets", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestWalletsCreateMixed verifies that on multi-create, valid wallets are
// created even when others fail and the status is the highest error status.
func (suite *TestSuiteStandard) TestWalletsCreateMixed() {
	body := []v1.WalletEditable{
		{Name: "BCA"},
		{Name: ""},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/wallets", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.WalletCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Data)
	assert.NotNil(suite.T(), response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestWalletsList() {
	for _, name := range []string{"BCA", "GoPay", "Dompet tunai"} {
		suite.createTestWallet(suite.T(), v1.WalletEditable{Name: name})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/wallets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WalletListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), 3, response.Pagination.Count)
	assert.Equal(suite.T(), int64(3), response.Pagination.Total)
	assert.Equal(suite.T(), 50, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestWalletsListFilter() {
	suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA", Type: models.WalletTypeBank})
	suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "GoPay", Type: models.WalletTypeEWallet})
	suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "Dompet tunai", Type: models.WalletTypeCash})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"By name", "name=GoPay", 1},
		{"By type", "type=bank", 1},
		{"Unknown name", "name=BRI", 0},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=1", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/wallets?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.WalletListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

// TestWalletsListScopedToUser verifies that wallets of other users are
// invisible.
func (suite *TestSuiteStandard) TestWalletsListScopedToUser() {
	suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})

	foreign := models.Wallet{UserID: "someone-else@example.com", Name: "Mandiri"}
	suite.Require().NoError(models.DB.Create(&foreign).Error)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/wallets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WalletListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "BCA", response.Data[0].Name)

	// Direct access is blocked, too
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/wallets/%s", foreign.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestWalletsGetSingle() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing wallet", wallet.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"No wallet with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID (number)", "23", http.StatusBadRequest},
		{"Invalid ID (string)", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/wallets/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestWalletsUpdate() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})

	r := test.Request(suite.T(), http.MethodPatch, wallet.Data.Links.Self, map[string]any{
		"name": "BCA Utama",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "BCA Utama", response.Data.Name)
}

// TestWalletsUpdateInitialBalance verifies that patching the initial balance
// moves the cached balance with it.
func (suite *TestSuiteStandard) TestWalletsUpdateInitialBalance() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA", InitialBalance: decimal.NewFromInt(100000)})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: wallet.Data.ID,
		Type:     models.TransactionTypeExpense,
		Category: "Makanan",
		Amount:   decimal.NewFromInt(30000),
	})

	r := test.Request(suite.T(), http.MethodPatch, wallet.Data.Links.Self, map[string]any{
		"initialBalance": "200000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.InitialBalance.Equal(decimal.NewFromInt(200000)), "initial balance is %s", response.Data.InitialBalance)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromInt(170000)), "balance is %s", response.Data.Balance)
}

// TestWalletsUpdateRejectedKeepsBalances verifies that an update failing
// validation changes neither the initial balance nor the cached balance,
// even when it contains an initial balance change.
func (suite *TestSuiteStandard) TestWalletsUpdateRejectedKeepsBalances() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA", InitialBalance: decimal.NewFromInt(100000)})

	r := test.Request(suite.T(), http.MethodPatch, wallet.Data.Links.Self, map[string]any{
		"name":           "",
		"initialBalance": "500000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, wallet.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "BCA", response.Data.Name)
	assert.True(suite.T(), response.Data.InitialBalance.Equal(decimal.NewFromInt(100000)), "initial balance is %s", response.Data.InitialBalance)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromInt(100000)), "balance is %s", response.Data.Balance)
}

func (suite *TestSuiteStandard) TestWalletsUpdateInvalid() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "name": 2" }`, http.StatusBadRequest},
		{"Name empty", map[string]any{"name": ""}, http.StatusBadRequest},
		{"Type unknown", map[string]any{"type": "crypto"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, wallet.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	// None of the rejected updates may have persisted anything
	r := test.Request(suite.T(), http.MethodGet, wallet.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "BCA", response.Data.Name)
	assert.Equal(suite.T(), models.WalletTypeBank, response.Data.Type)
}

func (suite *TestSuiteStandard) TestWalletsDelete() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{WalletID: wallet.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, wallet.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, wallet.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The default policy keeps the transactions
	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestWalletsDeleteCascade() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{WalletID: wallet.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, wallet.Data.Links.Self+"?onDelete=cascade", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestWalletsDeleteBlock() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{WalletID: wallet.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, wallet.Data.Links.Self+"?onDelete=block", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	// After deleting the transaction, the wallet can go
	r = test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, wallet.Data.Links.Self+"?onDelete=block", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestWalletsDeleteInvalid() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Unknown policy", wallet.Data.Links.Self + "?onDelete=purge", http.StatusBadRequest},
		{"No wallet with this ID", "http://example.com/v1/wallets/" + uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "http://example.com/v1/wallets/notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodDelete, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}
