package v1

import (
	"net/http"

	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsDashboard)
	r.GET("", co.GetDashboard)
}

// Dashboard is the overview of the finances of the authenticated user.
type Dashboard struct {
	MonthlySummary          Summary         `json:"monthlySummary"`                        // Summary of the current month
	PreviousMonthlySummary  Summary         `json:"previousMonthlySummary"`                // Summary of the previous month
	RecentTransactions      []Transaction   `json:"recentTransactions"`                    // The 10 most recent transactions
	IncomeChangePercentage  decimal.Decimal `json:"incomeChangePercentage" example:"12.5"` // Change of the income compared to the previous month in percent, rounded to two decimals
	ExpenseChangePercentage decimal.Decimal `json:"expenseChangePercentage" example:"-4"`  // Change of the expenses compared to the previous month in percent
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`                                                                // Data for the dashboard
	Error *string    `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func (co Controller) OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns the summaries of the current and the previous month, their change in percent and the most recent transactions
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	DashboardResponse
// @Router			/v1/dashboard [get]
func (co Controller) GetDashboard(c *gin.Context) {
	dashboard, err := co.dashboard.Execute(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(status(err), DashboardResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := Dashboard{
		MonthlySummary:          newSummary(co.Money, dashboard.MonthlySummary),
		PreviousMonthlySummary:  newSummary(co.Money, dashboard.PreviousMonthlySummary),
		RecentTransactions:      make([]Transaction, 0, len(dashboard.RecentTransactions)),
		IncomeChangePercentage:  dashboard.IncomeChangePercentage.Round(2),
		ExpenseChangePercentage: dashboard.ExpenseChangePercentage.Round(2),
	}

	for _, transaction := range dashboard.RecentTransactions {
		data.RecentTransactions = append(data.RecentTransactions, newTransaction(c, co.Money, transaction))
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &data})
}
