package models

import (
	"github.com/finanzas-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// MonthlySummary is the aggregation of all transactions of a user
// in one calendar month. It is computed on demand and never stored.
type MonthlySummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome" example:"1500"`    // Sum of all income
	TotalExpenses decimal.Decimal `json:"totalExpenses" example:"420.5"` // Sum of all expenses
	Balance       decimal.Decimal `json:"balance" example:"1079.5"`      // Income minus expenses
	Month         int             `json:"month" example:"3"`             // Month, 1 to 12
	Year          int             `json:"year" example:"2024"`           // Year
}

// Summarize aggregates the transactions that fall into the month.
// Transactions outside of the month are ignored.
func Summarize(month types.Month, transactions []Transaction) MonthlySummary {
	summary := MonthlySummary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Month:         int(month.Month()),
		Year:          month.Year(),
	}

	for _, t := range transactions {
		if !month.Contains(t.Date) {
			continue
		}

		switch t.Type {
		case TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		case TransactionTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
		}
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}
