package v1

import (
	"fmt"

	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/money"
	"github.com/finanzas-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Type        models.TransactionType `json:"type" example:"expense"`                         // Type of the transaction
	Amount      decimal.Decimal        `json:"amount" example:"25.5" minimum:"0"`              // The amount, always positive
	Description string                 `json:"description" example:"Groceries" default:""`     // A description
	Category    string                 `json:"category" example:"Comida"`                      // Name of the category
	Date        types.Date             `json:"date" example:"2024-03-15" swaggertype:"string"` // Date the transaction happened
}

func (editable TransactionEditable) model(userID uuid.UUID) models.TransactionCreate {
	return models.TransactionCreate{
		UserID:      userID,
		Type:        editable.Type,
		Amount:      editable.Amount,
		Description: editable.Description,
		Category:    editable.Category,
		Date:        editable.Date,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.Transaction
	FormattedAmount string           `json:"formattedAmount" example:"$25.500"` // The amount formatted for display
	Links           TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, formatter *money.Formatter, model models.Transaction) Transaction {
	url := c.GetString(string(httputil.ContextURL))

	return Transaction{
		Transaction:     model,
		FormattedAmount: formatter.Format(model.Amount),
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionQueryFilter struct {
	Type      models.TransactionType `form:"type"`      // By type
	Category  string                 `form:"category"`  // By category name
	StartDate types.Date             `form:"startDate"` // Transactions on or after this date
	EndDate   types.Date             `form:"endDate"`   // Transactions on or before this date
	Search    string                 `form:"search"`    // By string in the description
	Offset    uint                   `form:"offset"`    // The offset of the first transaction returned. Defaults to 0.
	Limit     int                    `form:"limit"`     // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.TransactionFilter, error) {
	if f.Type != "" && !f.Type.Valid() {
		return models.TransactionFilter{}, models.ErrTransactionTypeInvalid
	}

	return models.TransactionFilter{
		Type:      f.Type,
		Category:  f.Category,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Search:    f.Search,
		Offset:    f.Offset,
		Limit:     f.Limit,
	}, nil
}
