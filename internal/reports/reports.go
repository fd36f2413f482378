// Package reports derives read-side views from the wallet and transaction
// sets. All calculations are pure functions over a snapshot, recomputed on
// demand.
package reports

import (
	"sort"

	"github.com/catatduitmu/backend/internal/models"
	"github.com/catatduitmu/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// PercentChange returns the relative change from previous to current in
// percent.
//
// A previous value of zero would divide by zero, so it is special-cased:
// any growth from zero is reported as 100%, no change from zero as 0%.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}

		return decimal.Zero
	}

	return current.Sub(previous).Div(previous).Mul(hundred)
}

// BurnRate is the share of income spent in a period, in percent. Without
// income it is reported as 0 regardless of expenses.
func BurnRate(income, expense decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}

	return expense.Div(income).Mul(hundred)
}

// TotalAssets sums the balances of all wallets.
func TotalAssets(wallets []models.Wallet) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}

	return total
}

// PeriodTotals sums the transaction amounts by type.
func PeriodTotals(transactions []models.Transaction) (income, expense decimal.Decimal) {
	for _, t := range transactions {
		if t.Type == models.TransactionTypeIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}

	return
}

// CategoryTotal is the summed amount of one category in a period.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryBreakdown groups the transactions of the given type by category
// and returns the categories with the highest summed amounts, at most n. A
// negative n returns all of them. Ties are broken by the order in which
// categories are first encountered in the input.
func CategoryBreakdown(transactions []models.Transaction, transactionType models.TransactionType, n int) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, t := range transactions {
		if t.Type != transactionType {
			continue
		}

		if _, ok := totals[t.Category]; !ok {
			order = append(order, t.Category)
		}

		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	breakdown := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		breakdown = append(breakdown, CategoryTotal{Category: category, Total: totals[category]})
	}

	// The stable sort keeps first-encountered order for equal totals.
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})

	// A negative n returns all categories
	if n >= 0 && len(breakdown) > n {
		breakdown = breakdown[:n]
	}

	return breakdown
}

// MonthSummary is the dashboard view for one month.
type MonthSummary struct {
	Month         types.Month     `json:"month"`
	TotalAssets   decimal.Decimal `json:"totalAssets"` // All-time, not limited to the month
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	BurnRate      decimal.Decimal `json:"burnRate"`
	IncomeChange  decimal.Decimal `json:"incomeChange"`  // Percent change vs the previous month
	ExpenseChange decimal.Decimal `json:"expenseChange"` // Percent change vs the previous month
}

// TransactionsInMonth returns a user's transactions within a month, newest
// first.
func TransactionsInMonth(db *gorm.DB, userID string, month types.Month) ([]models.Transaction, error) {
	var transactions []models.Transaction

	err := db.
		Where(&models.Transaction{UserID: userID}).
		Where("datetime(date) >= datetime(?) AND datetime(date) < datetime(?)", month.Start(), month.End()).
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Find(&transactions).Error

	return transactions, err
}

// Summary computes the month summary for a user.
func Summary(db *gorm.DB, userID string, month types.Month) (MonthSummary, error) {
	var wallets []models.Wallet
	err := db.Where(&models.Wallet{UserID: userID}).Find(&wallets).Error
	if err != nil {
		return MonthSummary{}, err
	}

	current, err := TransactionsInMonth(db, userID, month)
	if err != nil {
		return MonthSummary{}, err
	}

	previous, err := TransactionsInMonth(db, userID, month.AddDate(0, -1))
	if err != nil {
		return MonthSummary{}, err
	}

	income, expense := PeriodTotals(current)
	previousIncome, previousExpense := PeriodTotals(previous)

	return MonthSummary{
		Month:         month,
		TotalAssets:   TotalAssets(wallets),
		Income:        income,
		Expense:       expense,
		BurnRate:      BurnRate(income, expense),
		IncomeChange:  PercentChange(income, previousIncome),
		ExpenseChange: PercentChange(expense, previousExpense),
	}, nil
}
