package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quote-zero/backend/internal/httputil"
	"github.com/quote-zero/backend/internal/models"
	"golang.org/x/exp/slices"
)

func RegisterItemRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsItems)
		r.GET("", GetItems)
		r.POST("", CreateItems)
	}
	{
		r.OPTIONS("/:id", OptionsItemDetail)
		r.GET("/:id", GetItem)
		r.PATCH("/:id", UpdateItem)
		r.DELETE("/:id", DeleteItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Items
// @Success		204
// @Router			/v1/items [options]
func OptionsItems(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Items
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [options]
func OptionsItemDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Item{})
}

// @Summary		Create items
// @Description	Creates new line items. The total of the quote is updated in the same transaction.
// @Tags			Items
// @Produce		json
// @Success		201		{object}	ItemCreateResponse
// @Failure		400		{object}	ItemCreateResponse
// @Failure		404		{object}	ItemCreateResponse
// @Failure		500		{object}	ItemCreateResponse
// @Param			items	body		[]ItemEditable	true	"Items"
// @Router			/v1/items [post]
func CreateItems(c *gin.Context) {
	var items []ItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &items)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ItemCreateResponse{}

	for _, create := range items {
		item := create.model()
		err = models.DB.Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newItem(c, item)
		r.Data = append(r.Data, ItemResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get items
// @Description	Returns a list of line items, ordered by their creation time
// @Tags			Items
// @Produce		json
// @Success		200	{object}	ItemListResponse
// @Failure		400	{object}	ItemListResponse
// @Failure		500	{object}	ItemListResponse
// @Router			/v1/items [get]
// @Param			quote			query	string	false	"Filter by quote ID"
// @Param			description		query	string	false	"Filter by description"
// @Param			discountKind	query	string	false	"Filter by discount kind"
// @Param			offset			query	uint	false	"The offset of the first item returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of items to return. Defaults to 50."
func GetItems(c *gin.Context) {
	var filter ItemQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ItemListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("datetime(items.created_at) ASC").
		Where(&where, queryFields...)

	if filter.Description != "" {
		q = q.Where("description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	} else if slices.Contains(setFields, "Description") {
		q = q.Where("description = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 items and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var items []models.Item
	err = q.Find(&items).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Item, 0, len(items))
	for _, item := range items {
		data = append(data, newItem(c, item))
	}

	c.JSON(http.StatusOK, ItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get item
// @Description	Returns a specific line item
// @Tags			Items
// @Produce		json
// @Success		200	{object}	ItemResponse
// @Failure		400	{object}	ItemResponse
// @Failure		404	{object}	ItemResponse
// @Failure		500	{object}	ItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [get]
func GetItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &e,
		})
		return
	}

	var item models.Item
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &e,
		})
		return
	}

	apiResource := newItem(c, item)
	c.JSON(http.StatusOK, ItemResponse{Data: &apiResource})
}

// @Summary		Update item
// @Description	Updates an existing line item. Only values to be updated need to be specified. The total of the quote is updated in the same transaction.
// @Tags			Items
// @Accept			json
// @Produce		json
// @Success		200		{object}	ItemResponse
// @Failure		400		{object}	ItemResponse
// @Failure		404		{object}	ItemResponse
// @Failure		500		{object}	ItemResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		ItemEditable	true	"Item"
// @Router			/v1/items/{id} [patch]
func UpdateItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &e,
		})
		return
	}

	var item models.Item
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ItemEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &e,
		})
		return
	}

	// Items stay with the quote they were created for
	fields := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		if field == "QuoteID" {
			continue
		}
		fields = append(fields, field)
	}

	// Bind the data for the patch
	var data ItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&item).Select("", fields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ItemResponse{
			Error: &e,
		})
		return
	}

	apiResource := newItem(c, item)
	c.JSON(http.StatusOK, ItemResponse{Data: &apiResource})
}

// @Summary		Delete item
// @Description	Deletes a line item. The total of the quote is updated in the same transaction.
// @Tags			Items
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/items/{id} [delete]
func DeleteItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var item models.Item
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
