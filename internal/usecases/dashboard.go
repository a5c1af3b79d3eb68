package usecases

import (
	"context"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/repositories"
	"github.com/finanzas-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RecentTransactions is the number of transactions on the dashboard.
const RecentTransactions = 10

var hundred = decimal.NewFromInt(100)

// Dashboard is the overview of the finances of a user.
type Dashboard struct {
	MonthlySummary          models.MonthlySummary
	PreviousMonthlySummary  models.MonthlySummary
	RecentTransactions      []models.Transaction
	IncomeChangePercentage  decimal.Decimal
	ExpenseChangePercentage decimal.Decimal
}

type GetDashboardData struct {
	Transactions repositories.TransactionRepository

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Execute loads the summaries of the current and the previous month and
// the most recent transactions concurrently. If one of the requests fails,
// the others are cancelled and the first error is returned.
func (u GetDashboardData) Execute(ctx context.Context, userID uuid.UUID) (Dashboard, error) {
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}

	current := types.MonthOf(now().UTC())
	previous := current.Previous()

	var dashboard Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		dashboard.MonthlySummary, err = u.Transactions.GetMonthlySummary(gctx, userID, int(current.Month()), current.Year())
		return
	})

	g.Go(func() (err error) {
		dashboard.PreviousMonthlySummary, err = u.Transactions.GetMonthlySummary(gctx, userID, int(previous.Month()), previous.Year())
		return
	})

	g.Go(func() (err error) {
		dashboard.RecentTransactions, err = u.Transactions.GetAll(gctx, userID, models.TransactionFilter{Limit: RecentTransactions})
		return
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	dashboard.IncomeChangePercentage = PercentageChange(dashboard.PreviousMonthlySummary.TotalIncome, dashboard.MonthlySummary.TotalIncome)
	dashboard.ExpenseChangePercentage = PercentageChange(dashboard.PreviousMonthlySummary.TotalExpenses, dashboard.MonthlySummary.TotalExpenses)

	return dashboard, nil
}

// PercentageChange returns the change from previous to current in percent.
//
// Without a previous value, any positive current value is a change of 100%.
func PercentageChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}

	return current.Sub(previous).Div(previous).Mul(hundred)
}
