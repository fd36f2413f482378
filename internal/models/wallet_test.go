package models_test

import (
	"github.com/catatduitmu/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestWalletTrimWhitespace() {
	wallet := suite.createTestWallet(models.Wallet{Name: "  BCA\t"})

	suite.Assert().Equal("BCA", wallet.Name)
}

func (suite *TestSuiteStandard) TestWalletNameEmpty() {
	err := models.DB.Create(&models.Wallet{Name: "   "}).Error

	suite.Assert().ErrorIs(err, models.ErrWalletNameEmpty)
}

func (suite *TestSuiteStandard) TestWalletTypeDefaults() {
	wallet := suite.createTestWallet(models.Wallet{Name: "Dompet"})

	suite.Assert().Equal(models.WalletTypeBank, wallet.Type)
	suite.Assert().Equal("bg-blue-600", wallet.Color)
}

func (suite *TestSuiteStandard) TestWalletTypeInvalid() {
	err := models.DB.Create(&models.Wallet{Name: "Crypto", Type: "crypto"}).Error

	suite.Assert().ErrorIs(err, models.ErrWalletTypeInvalid)
}

func (suite *TestSuiteStandard) TestWalletColorByType() {
	tests := []struct {
		walletType models.WalletType
		color      string
	}{
		{models.WalletTypeBank, "bg-blue-600"},
		{models.WalletTypeEWallet, "bg-purple-600"},
		{models.WalletTypeCash, "bg-green-600"},
	}

	for _, tt := range tests {
		wallet := suite.createTestWallet(models.Wallet{Name: "Dompet " + string(tt.walletType), Type: tt.walletType})
		suite.Assert().Equal(tt.color, wallet.Color, "wrong default color for type %s", tt.walletType)
	}
}

func (suite *TestSuiteStandard) TestWalletExplicitColorKept() {
	wallet := suite.createTestWallet(models.Wallet{Name: "GoPay", Type: models.WalletTypeEWallet, Color: "bg-red-600"})

	suite.Assert().Equal("bg-red-600", wallet.Color)
}

func (suite *TestSuiteStandard) TestWalletBalanceStartsAtInitialBalance() {
	wallet := suite.createTestWallet(models.Wallet{Name: "BCA", InitialBalance: decimal.NewFromInt(500000)})

	suite.Assert().True(wallet.Balance.Equal(decimal.NewFromInt(500000)), "balance is %s", wallet.Balance)
}

func (suite *TestSuiteStandard) TestWalletBalanceFromTransactions() {
	wallet := suite.createTestWallet(models.Wallet{Name: "BCA", InitialBalance: decimal.NewFromInt(100000)})

	suite.createTestTransaction(models.Transaction{
		WalletID: wallet.ID,
		Type:     models.TransactionTypeIncome,
		Category: "Gaji",
		Amount:   decimal.NewFromInt(50000),
	})
	suite.createTestTransaction(models.Transaction{
		WalletID: wallet.ID,
		Type:     models.TransactionTypeExpense,
		Category: "Makanan",
		Amount:   decimal.NewFromInt(20000),
	})

	balance, err := wallet.BalanceFromTransactions(models.DB)
	suite.Assert().NoError(err)
	suite.Assert().True(balance.Equal(decimal.NewFromInt(130000)), "balance is %s", balance)
}
