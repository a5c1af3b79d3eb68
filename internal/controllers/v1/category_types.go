package v1

import (
	"fmt"
	neturl "net/url"

	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name  string                 `json:"name" example:"Comida"`                     // Name of the category, unique per user
	Icon  string                 `json:"icon" example:"🍔" default:"🍔"`              // Icon shown for the category
	Color string                 `json:"color" example:"primary" default:"primary"` // Palette token for the category
	Type  models.TransactionType `json:"type" example:"expense"`                    // Type of the transactions in this category
}

func (editable CategoryEditable) model(userID uuid.UUID) models.CategoryCreate {
	return models.CategoryCreate{
		UserID: userID,
		Name:   editable.Name,
		Icon:   editable.Icon,
		Color:  editable.Color,
		Type:   editable.Type,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=Comida"`            // Transactions in this category
}

type Category struct {
	models.Category
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(httputil.ContextURL))

	return Category{
		Category: model,
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, neturl.QueryEscape(model.Name)),
		},
	}
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryQueryFilter struct {
	Type   models.TransactionType `form:"type"`   // By type
	Offset uint                   `form:"offset"` // The offset of the first category returned. Defaults to 0.
	Limit  int                    `form:"limit"`  // Maximum number of categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() (models.CategoryFilter, error) {
	if f.Type != "" && !f.Type.Valid() {
		return models.CategoryFilter{}, models.ErrTransactionTypeInvalid
	}

	return models.CategoryFilter{
		Type:   f.Type,
		Offset: f.Offset,
		Limit:  f.Limit,
	}, nil
}
