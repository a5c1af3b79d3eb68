package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	v1 "github.com/finanzas-app/backend/internal/controllers/v1"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/types"
	"github.com/finanzas-app/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateTransaction() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida", Type: models.TransactionTypeExpense})

	// The type of the category wins
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromFloat(12500),
		Description: "  Supermercado ",
		Category:    " Comida",
		Date:        types.NewDate(2024, 3, 15),
	})

	suite.Assert().Equal(models.TransactionTypeExpense, transaction.Data.Type)
	suite.Assert().Equal(suite.session.User.ID, transaction.Data.UserID)
	suite.Assert().True(decimal.NewFromFloat(12500).Equal(transaction.Data.Amount))
	suite.Assert().Equal("Supermercado", transaction.Data.Description)
	suite.Assert().Equal("Comida", transaction.Data.Category)
	suite.Assert().Equal("2024-03-15", transaction.Data.Date.String())
	suite.Assert().Contains(transaction.Data.FormattedAmount, "12.500")
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID), transaction.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestCreateTransactionFails() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida"})

	tests := []struct {
		name string
		body any
		err  string
	}{
		{"Unknown category", v1.TransactionEditable{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: "Viajes", Date: types.NewDate(2024, 3, 1)}, "there is no category named 'Viajes'"},
		{"Negative amount", v1.TransactionEditable{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(-1), Category: "Comida", Date: types.NewDate(2024, 3, 1)}, models.ErrAmountNegative.Error()},
		{"Invalid type", v1.TransactionEditable{Type: "transfer", Amount: decimal.NewFromInt(1), Category: "Comida", Date: types.NewDate(2024, 3, 1)}, models.ErrTransactionTypeInvalid.Error()},
		{"Missing date", v1.TransactionEditable{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: "Comida"}, models.ErrDateMissing.Error()},
		{"Invalid date", `{ "type": "expense", "amount": 1, "category": "Comida", "date": "15.03.2024" }`, "the body of your request contains invalid or un-parseable data"},
		{"Empty body", "", "the request body must not be empty"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "http://example.com/v1/transactions", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
			suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsRequireSession() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
	suite.Assert().Equal(models.ErrSessionMissing.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestGetTransactions() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida", Type: models.TransactionTypeExpense})
	suite.createTestCategory(v1.CategoryEditable{Name: "Sueldo", Type: models.TransactionTypeIncome})

	suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(1000), Category: "Sueldo", Description: "Sueldo marzo", Date: types.NewDate(2024, 3, 1)})
	suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(20), Category: "Comida", Description: "Pan", Date: types.NewDate(2024, 3, 10)})
	suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(30), Category: "Comida", Description: "Supermercado", Date: types.NewDate(2024, 4, 2)})

	// Transactions of other users are never listed
	suite.asUser("otro@example.com", func() {
		suite.createTestCategory(v1.CategoryEditable{Name: "Comida"})
		suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(5), Category: "Comida", Description: "Pan", Date: types.NewDate(2024, 3, 10)})
	})

	tests := []struct {
		query        string
		descriptions []string
		total        int64
		limit        int
	}{
		{"", []string{"Supermercado", "Pan", "Sueldo marzo"}, 3, 50},
		{"type=income", []string{"Sueldo marzo"}, 1, 50},
		{"category=Comida", []string{"Supermercado", "Pan"}, 2, 50},
		{"startDate=2024-03-05&endDate=2024-03-31", []string{"Pan"}, 1, 50},
		{"search=MERCADO", []string{"Supermercado"}, 1, 50},
		{"limit=2", []string{"Supermercado", "Pan"}, 3, 2},
		{"offset=1&limit=1", []string{"Pan"}, 3, 1},
		{"limit=-1", []string{"Supermercado", "Pan", "Sueldo marzo"}, 3, -1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodGet, "http://example.com/v1/transactions?"+tt.query, "", test.Bearer(suite.session.Token))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			descriptions := make([]string, 0, len(response.Data))
			for _, transaction := range response.Data {
				descriptions = append(descriptions, transaction.Description)
			}

			assert.Equal(t, tt.descriptions, descriptions)
			assert.Equal(t, len(tt.descriptions), response.Pagination.Count)
			assert.Equal(t, tt.total, response.Pagination.Total)
			assert.Equal(t, tt.limit, response.Pagination.Limit)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransactionsInvalidFilter() {
	tests := []struct {
		query string
		err   string
	}{
		{"type=transfer", models.ErrTransactionTypeInvalid.Error()},
		{"startDate=yesterday", "the query string contains unparseable data"},
		{"limit=many", "the query string contains unparseable data"},
		{"startDate=2024-04-01&endDate=2024-03-01", models.ErrDateRangeInvalid.Error()},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			r := suite.request(http.MethodGet, "http://example.com/v1/transactions?"+tt.query, "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
			suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransaction() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(20), Category: "Comida"})

	r := suite.request(http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(transaction.Data.ID, response.Data.ID)

	// Other users cannot see the transaction
	suite.asUser("otro@example.com", func() {
		r := suite.request(http.MethodGet, transaction.Data.Links.Self, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
		suite.Assert().Equal("there is no transaction matching your query", test.DecodeError(suite.T(), r.Body.Bytes()))
	})
}

func (suite *TestSuiteStandard) TestGetTransactionFails() {
	tests := []struct {
		id     string
		status int
	}{
		{uuid.NewString(), http.StatusNotFound},
		{"not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.id, func() {
			r := suite.request(http.MethodGet, "http://example.com/v1/transactions/"+tt.id, "")
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida", Type: models.TransactionTypeExpense})
	suite.createTestCategory(v1.CategoryEditable{Name: "Sueldo", Type: models.TransactionTypeIncome})
	transaction := suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(20), Description: "Pan", Category: "Comida"})

	r := suite.request(http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"amount":   "99.99",
		"category": "Sueldo",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(decimal.RequireFromString("99.99").Equal(response.Data.Amount))
	suite.Assert().Equal("Sueldo", response.Data.Category)
	suite.Assert().Equal(models.TransactionTypeIncome, response.Data.Type, "the type must follow the new category")
	suite.Assert().Equal("Pan", response.Data.Description, "fields that are not set must not change")
}

func (suite *TestSuiteStandard) TestUpdateTransactionFails() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(20), Category: "Comida"})

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"Negative amount", transaction.Data.Links.Self, `{ "amount": -5 }`, http.StatusBadRequest},
		{"Unknown category", transaction.Data.Links.Self, `{ "category": "Viajes" }`, http.StatusBadRequest},
		{"Broken body", transaction.Data.Links.Self, `{ "amount": 5 `, http.StatusBadRequest},
		{"Not found", "http://example.com/v1/transactions/" + uuid.NewString(), `{ "amount": 5 }`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPatch, tt.url, tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	// Other users cannot update the transaction
	suite.asUser("otro@example.com", func() {
		r := suite.request(http.MethodPatch, transaction.Data.Links.Self, `{ "amount": 5 }`)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	})
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(20), Category: "Comida"})

	// Other users cannot delete the transaction
	suite.asUser("otro@example.com", func() {
		r := suite.request(http.MethodDelete, transaction.Data.Links.Self, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	})

	r := suite.request(http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Deleting again succeeds
	r = suite.request(http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestTransactionOptions() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Comida"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{Amount: decimal.NewFromInt(20), Category: "Comida"})

	r := suite.request(http.MethodOptions, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, "http://example.com/v1/transactions/"+uuid.NewString(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodOptions, "http://example.com/v1/transactions/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionsDBClosed verifies that errors are processed correctly when
// the database for transactions is closed.
func (suite *TestSuiteStandard) TestTransactionsDBClosed() {
	db, err := models.Open(models.DriverSQLite, test.TmpFile(suite.T()))
	suite.Require().Nil(err)

	// Sessions stay on the open database
	suite.controller = suite.newController(suite.db, db)
	sqlDB, err := db.DB()
	suite.Require().Nil(err)
	sqlDB.Close()

	tests := []struct {
		method string
		url    string
		body   any
	}{
		{http.MethodGet, "http://example.com/v1/transactions", ""},
		{http.MethodGet, "http://example.com/v1/transactions/" + uuid.NewString(), ""},
		{http.MethodDelete, "http://example.com/v1/transactions/" + uuid.NewString(), ""},
		{http.MethodPost, "http://example.com/v1/transactions", v1.TransactionEditable{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Category: "Comida", Date: types.NewDate(2024, 3, 1)}},
	}

	for _, tt := range tests {
		suite.Run(strings.Join([]string{tt.method, tt.url}, " "), func() {
			r := suite.request(tt.method, tt.url, tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
			suite.Assert().Equal(models.ErrGeneral.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
		})
	}
}
