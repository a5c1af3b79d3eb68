package v1

import (
	"net/http"
	"time"

	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/money"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterSummaryRoutes registers the routes for monthly summaries with
// the RouterGroup that is passed.
func (co Controller) RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsSummary)
	r.GET("", co.GetSummary)
}

type SummaryFormatted struct {
	TotalIncome   string `json:"totalIncome" example:"$1.500"` // Sum of all income
	TotalExpenses string `json:"totalExpenses" example:"$420"` // Sum of all expenses
	Balance       string `json:"balance" example:"-$1.080"`    // Income minus expenses
}

// Summary is the API representation of a monthly summary.
type Summary struct {
	models.MonthlySummary
	Currency  string           `json:"currency" example:"CLP"` // ISO 4217 code of the currency used for formatting
	Formatted SummaryFormatted `json:"formatted"`              // The amounts formatted for display
}

func newSummary(formatter *money.Formatter, model models.MonthlySummary) Summary {
	return Summary{
		MonthlySummary: model,
		Currency:       formatter.Currency(),
		Formatted: SummaryFormatted{
			TotalIncome:   formatter.Format(model.TotalIncome),
			TotalExpenses: formatter.Format(model.TotalExpenses),
			Balance:       formatter.Format(model.Balance),
		},
	}
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`                                               // Data for the summary
	Error *string  `json:"error" example:"the month must be between 1 and 12"` // The error, if any occurred
}

type SummaryQuery struct {
	Year  int `form:"year" example:"2024"` // Year. Defaults to the current year.
	Month int `form:"month" example:"3"`   // Month, 1 to 12. Defaults to the current month.
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/summary [options]
func (co Controller) OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get monthly summary
// @Description	Returns the income, expenses and balance of the authenticated user for a month
// @Tags			Summary
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		401		{object}	httpError
// @Failure		500		{object}	SummaryResponse
// @Param			year	query		int	false	"Year, defaults to the current year"
// @Param			month	query		int	false	"Month from 1 to 12, defaults to the current month"
// @Router			/v1/summary [get]
func (co Controller) GetSummary(c *gin.Context) {
	var query SummaryQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	now := time.Now().UTC()
	setFields := httputil.GetURLFields(c.Request.URL, query)
	if !slices.Contains(setFields, "Year") {
		query.Year = now.Year()
	}
	if !slices.Contains(setFields, "Month") {
		query.Month = int(now.Month())
	}

	summary, err := co.Transactions.GetMonthlySummary(c.Request.Context(), userID(c), query.Month, query.Year)
	if err != nil {
		c.JSON(status(err), SummaryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newSummary(co.Money, summary)
	c.JSON(http.StatusOK, SummaryResponse{Data: &data})
}
