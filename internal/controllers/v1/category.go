package v1

import (
	"net/http"

	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsCategoryList)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.GET("/:id", co.GetCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

// category returns the category if it belongs to the authenticated user.
func (co Controller) category(c *gin.Context, id uuid.UUID) (models.Category, error) {
	category, err := co.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		return models.Category{}, err
	}

	if category == nil || category.UserID != userID(c) {
		return models.Category{}, notFound("category")
	}

	return *category, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func (co Controller) OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [options]
func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = co.category(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: *errorMessage(c, err),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create category
// @Description	Creates a new category for the authenticated user
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		401			{object}	httpError
// @Failure		500			{object}	CategoryResponse
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), CategoryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	category, err := co.Categories.Create(c.Request.Context(), editable.model(userID(c)))
	if err != nil {
		c.JSON(status(err), CategoryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusCreated, CategoryResponse{Data: &data})
}

// @Summary		Get categories
// @Description	Returns the categories of the authenticated user, sorted by name
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	CategoryListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	CategoryListResponse
// @Router			/v1/categories [get]
// @Param			type		query	string	false	"Filter by type, 'income' or 'expense'"
// @Param			offset		query	uint	false	"The offset of the first category returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of categories to return. Defaults to 50, -1 returns all."
func (co Controller) GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, CategoryListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		c.JSON(status(err), CategoryListResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	// Default to 50 categories
	filterModel.Limit = defaultLimit
	if slices.Contains(setFields, "Limit") {
		filterModel.Limit = filter.Limit
	}

	categories, err := co.Categories.GetAll(c.Request.Context(), userID(c), filterModel)
	if err != nil {
		c.JSON(status(err), CategoryListResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	count, err := co.Categories.Count(c.Request.Context(), userID(c), filterModel)
	if err != nil {
		c.JSON(status(err), CategoryListResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(c, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  filterModel.Limit,
		},
	})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	CategoryResponse
// @Failure		500	{object}	CategoryResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), CategoryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	category, err := co.category(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), CategoryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Update category
// @Description	Updates an existing category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		401			{object}	httpError
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			id			path		URIID						true	"ID formatted as string"
// @Param			category	body		models.CategoryUpdate	true	"Category"
// @Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), CategoryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	category, err := co.category(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), CategoryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	var update models.CategoryUpdate
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), CategoryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	category, err = co.Categories.Update(c.Request.Context(), category.ID, update)
	if err != nil {
		c.JSON(status(err), CategoryResponse{
			Error: errorMessage(c, err),
		})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Delete category
// @Description	Deletes a category. Deleting a category that does not exist succeeds.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	category, err := co.Categories.GetByID(c.Request.Context(), uri.ID.UUID)
	if err == nil && category != nil && category.UserID != userID(c) {
		err = notFound("category")
	}

	if err == nil {
		err = co.Categories.Delete(c.Request.Context(), uri.ID.UUID)
	}

	if err != nil {
		c.JSON(status(err), httpError{
			Error: *errorMessage(c, err),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
