package models

import "golang.org/x/exp/slices"

// The category vocabularies match the ones the web UI and the bot keyboards
// offer. The storage layer only requires a non-empty category so that new
// categories can be added without a schema migration; the API and bot
// boundaries validate against these lists.
var (
	IncomeCategories  = []string{"Gaji", "Bonus", "Penjualan", "Investasi", "Hadiah", "Lainnya"}
	ExpenseCategories = []string{"Makanan", "Transportasi", "Belanja", "Tagihan", "Hiburan", "Kesehatan", "Pendidikan", "Donasi", "Lainnya"}
)

// CategoriesFor returns the category vocabulary for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == TransactionTypeIncome {
		return IncomeCategories
	}

	return ExpenseCategories
}

// CategoryAllowed reports whether the category is part of the fixed
// vocabulary for the transaction type.
func CategoryAllowed(t TransactionType, category string) bool {
	return slices.Contains(CategoriesFor(t), category)
}
