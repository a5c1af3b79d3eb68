package v1

import (
	"net/http"

	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// transaction returns the transaction if it belongs to the authenticated user.
func (co Controller) transaction(c *gin.Context, id uuid.UUID) (models.Transaction, error) {
	transaction, err := co.Transactions.GetByID(c.Request.Context(), id)
	if err != nil {
		return models.Transaction{}, err
	}

	if transaction == nil || transaction.UserID != userID(c) {
		return models.Transaction{}, notFound("transaction")
	}

	return *transaction, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func (co Controller) OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = co.transaction(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: *errorMessage(c, err),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transaction
// @Description	Creates a new transaction for the authenticated user. The type of the transaction is set to the type of its category.
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	httpError
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), TransactionResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	transaction, err := co.Transactions.Create(c.Request.Context(), editable.model(userID(c)))
	if err != nil {
		c.JSON(status(err), TransactionResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newTransaction(c, co.Money, transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Get transactions
// @Description	Returns the transactions of the authenticated user, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			type		query	string	false	"Filter by type, 'income' or 'expense'"
// @Param			category	query	string	false	"Filter by category name"
// @Param			startDate	query	string	false	"Transactions on or after this date"
// @Param			endDate		query	string	false	"Transactions on or before this date"
// @Param			search		query	string	false	"Search for this text in the description"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50, -1 returns all."
func (co Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		c.JSON(status(err), TransactionListResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	// Default to 50 transactions
	filterModel.Limit = defaultLimit
	if slices.Contains(setFields, "Limit") {
		filterModel.Limit = filter.Limit
	}

	transactions, err := co.Transactions.GetAll(c.Request.Context(), userID(c), filterModel)
	if err != nil {
		c.JSON(status(err), TransactionListResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	count, err := co.Transactions.Count(c.Request.Context(), userID(c), filterModel)
	if err != nil {
		c.JSON(status(err), TransactionListResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, co.Money, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  filterModel.Limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), TransactionResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	transaction, err := co.transaction(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), TransactionResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newTransaction(c, co.Money, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	httpError
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID						true	"ID formatted as string"
// @Param			transaction	body		models.TransactionUpdate	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), TransactionResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	transaction, err := co.transaction(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), TransactionResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	var update models.TransactionUpdate
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), TransactionResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	transaction, err = co.Transactions.Update(c.Request.Context(), transaction.ID, update)
	if err != nil {
		c.JSON(status(err), TransactionResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newTransaction(c, co.Money, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction. Deleting a transaction that does not exist succeeds.
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	transaction, err := co.Transactions.GetByID(c.Request.Context(), uri.ID.UUID)
	if err == nil && transaction != nil && transaction.UserID != userID(c) {
		err = notFound("transaction")
	}

	if err == nil {
		err = co.Transactions.Delete(c.Request.Context(), uri.ID.UUID)
	}

	if err != nil {
		c.JSON(status(err), httpError{
			Error: *errorMessage(c, err),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
