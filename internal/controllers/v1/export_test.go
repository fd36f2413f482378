package v1_test

import (
	"encoding/json"
	"net/http"
	"strings"

	v1 "github.com/catatduitmu/backend/internal/controllers/v1"
	"github.com/catatduitmu/backend/internal/export"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/catatduitmu/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExport() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA", InitialBalance: decimal.NewFromInt(100000)})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{WalletID: wallet.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.Contains(suite.T(), r.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(suite.T(), r.Header().Get("Content-Disposition"), ".json")

	var snapshot export.Snapshot
	test.DecodeResponse(suite.T(), &r, &snapshot)

	assert.Equal(suite.T(), test.User, snapshot.User)
	assert.False(suite.T(), snapshot.ExportDate.IsZero())

	var wallets []map[string]any
	suite.Require().NoError(json.Unmarshal(snapshot.Wallets, &wallets))
	assert.Len(suite.T(), wallets, 1)

	var transactions []map[string]any
	suite.Require().NoError(json.Unmarshal(snapshot.Transactions, &transactions))
	assert.Len(suite.T(), transactions, 1)
}

func (suite *TestSuiteStandard) TestExportCSV() {
	wallet := suite.createTestWallet(suite.T(), v1.WalletEditable{Name: "BCA"})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		WalletID: wallet.Data.ID,
		Type:     models.TransactionTypeExpense,
		Category: "Makanan",
		Amount:   decimal.NewFromInt(25000),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/csv", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.Contains(suite.T(), r.Header().Get("Content-Type"), "text/csv")
	assert.Contains(suite.T(), r.Header().Get("Content-Disposition"), ".csv")

	lines := strings.Split(strings.TrimRight(r.Body.String(), "\n"), "\n")
	suite.Require().Len(lines, 2)
	assert.Equal(suite.T(), export.CSVHeader, lines[0])
	assert.Contains(suite.T(), lines[1], `"Makanan"`)
	assert.Contains(suite.T(), lines[1], `"BCA"`)
}
