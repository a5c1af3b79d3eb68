package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/finanzas-app/backend/internal/controllers/v1"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/types"
	"github.com/finanzas-app/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestGetDashboard() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida", Type: models.TransactionTypeExpense})
	suite.createTestCategory(v1.CategoryEditable{Name: "Sueldo", Type: models.TransactionTypeIncome})

	current := types.MonthOf(time.Now().UTC())
	previous := current.Previous()

	// Previous month: 1000 income, 400 expenses
	suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(1000), Category: "Sueldo", Date: previous.FirstDay()})
	suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(400), Category: "Comida", Date: previous.LastDay()})

	// Current month: 1200 income, 11 expenses of 10 each
	suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(1200), Category: "Sueldo", Date: current.FirstDay()})
	for i := 0; i < 11; i++ {
		suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(10), Category: "Comida", Date: current.FirstDay()})
	}

	r := suite.request(http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	dashboard := response.Data

	suite.Assert().Equal(int(current.Month()), dashboard.MonthlySummary.Month)
	suite.Assert().True(decimal.NewFromInt(1200).Equal(dashboard.MonthlySummary.TotalIncome))
	suite.Assert().True(decimal.NewFromInt(110).Equal(dashboard.MonthlySummary.TotalExpenses))

	suite.Assert().Equal(int(previous.Month()), dashboard.PreviousMonthlySummary.Month)
	suite.Assert().Equal(previous.Year(), dashboard.PreviousMonthlySummary.Year)
	suite.Assert().True(decimal.NewFromInt(600).Equal(dashboard.PreviousMonthlySummary.Balance))

	suite.Assert().True(decimal.NewFromInt(20).Equal(dashboard.IncomeChangePercentage), dashboard.IncomeChangePercentage.String())
	suite.Assert().True(decimal.RequireFromString("-72.5").Equal(dashboard.ExpenseChangePercentage), dashboard.ExpenseChangePercentage.String())

	suite.Assert().Len(dashboard.RecentTransactions, 10)
	suite.Assert().NotEmpty(dashboard.MonthlySummary.Formatted.TotalIncome)
}

func (suite *TestSuiteStandard) TestGetDashboardRoundsPercentages() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Sueldo", Type: models.TransactionTypeIncome})

	current := types.MonthOf(time.Now().UTC())
	previous := current.Previous()

	suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(3), Category: "Sueldo", Date: previous.FirstDay()})
	suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(4), Category: "Sueldo", Date: current.FirstDay()})

	r := suite.request(http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(decimal.RequireFromString("33.33").Equal(response.Data.IncomeChangePercentage), response.Data.IncomeChangePercentage.String())
}

func (suite *TestSuiteStandard) TestGetDashboardEmpty() {
	r := suite.request(http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Empty(response.Data.RecentTransactions)
	suite.Assert().True(response.Data.IncomeChangePercentage.IsZero())
	suite.Assert().True(response.Data.ExpenseChangePercentage.IsZero())
}

func (suite *TestSuiteStandard) TestGetDashboardDBClosed() {
	suite.CloseDB()

	r := suite.request(http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
