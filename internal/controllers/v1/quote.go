package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quote-zero/backend/internal/httputil"
	"github.com/quote-zero/backend/internal/models"
	"golang.org/x/exp/slices"
)

func RegisterQuoteRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsQuotes)
		r.GET("", GetQuotes)
		r.POST("", CreateQuotes)
	}
	{
		r.OPTIONS("/:id", OptionsQuoteDetail)
		r.GET("/:id", GetQuote)
		r.PATCH("/:id", UpdateQuote)
		r.DELETE("/:id", DeleteQuote)
	}
	{
		r.OPTIONS("/:id/status", OptionsQuoteStatus)
		r.POST("/:id/status", ToggleQuoteStatus)
	}
	{
		r.OPTIONS("/:id/restore", OptionsQuoteRestore)
		r.POST("/:id/restore", RestoreQuote)
	}
	{
		r.OPTIONS("/:id/purge", OptionsQuotePurge)
		r.DELETE("/:id/purge", PurgeQuote)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Quotes
// @Success		204
// @Router			/v1/quotes [options]
func OptionsQuotes(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Quotes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id} [options]
func OptionsQuoteDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Unscoped since trashed quotes stay addressable until they are purged
	err = models.DB.Unscoped().First(&models.Quote{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Quotes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id}/status [options]
func OptionsQuoteStatus(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Quote{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Quotes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id}/restore [options]
func OptionsQuoteRestore(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Unscoped().First(&models.Quote{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Quotes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id}/purge [options]
func OptionsQuotePurge(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Unscoped().First(&models.Quote{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Create quotes
// @Description	Creates new quotes
// @Tags			Quotes
// @Produce		json
// @Success		201		{object}	QuoteCreateResponse
// @Failure		400		{object}	QuoteCreateResponse
// @Failure		500		{object}	QuoteCreateResponse
// @Param			quotes	body		[]QuoteEditable	true	"Quotes"
// @Router			/v1/quotes [post]
func CreateQuotes(c *gin.Context) {
	var quotes []QuoteEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &quotes)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := QuoteCreateResponse{}

	for _, create := range quotes {
		quote := create.model()
		err = models.DB.Create(&quote).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newQuote(c, quote)
		r.Data = append(r.Data, QuoteResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get quotes
// @Description	Returns a list of quotes
// @Tags			Quotes
// @Produce		json
// @Success		200	{object}	QuoteListResponse
// @Failure		400	{object}	QuoteListResponse
// @Failure		500	{object}	QuoteListResponse
// @Router			/v1/quotes [get]
// @Param			owner				query	string	false	"Filter by owner ID"
// @Param			status				query	string	false	"Filter by lifecycle status"
// @Param			paymentMethod		query	string	false	"Filter by payment method"
// @Param			taxId				query	string	false	"Filter by the exact tax ID of the client"
// @Param			name				query	string	false	"Filter by client name"
// @Param			note				query	string	false	"Filter by note"
// @Param			search				query	string	false	"Search for this text in client name and note"
// @Param			trashed				query	bool	false	"Only list trashed quotes"
// @Param			totalLessOrEqual	query	string	false	"Total less than or equal to this"
// @Param			totalMoreOrEqual	query	string	false	"Total more than or equal to this"
// @Param			fromDate			query	string	false	"Quotes drafted on or after this date"
// @Param			untilDate			query	string	false	"Quotes drafted on or before this date"
// @Param			order				query	string	false	"Sort order for the drafting date. Defaults to desc."
// @Param			offset				query	uint	false	"The offset of the first quote returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of quotes to return. Defaults to 50."
func GetQuotes(c *gin.Context) {
	var filter QuoteQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, QuoteListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), QuoteListResponse{
			Error: &s,
		})
		return
	}

	order := "DESC"
	switch filter.Order {
	case "", "desc":
	case "asc":
		order = "ASC"
	default:
		s := errOrderInvalid.Error()
		c.JSON(http.StatusBadRequest, QuoteListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("datetime(quotes.created_at) " + order).
		Where(&where, queryFields...)

	// The trash is listed with the same endpoint, flipped by the
	// trashed parameter
	if filter.Trashed {
		q = q.Unscoped().Where("quotes.deleted_at IS NOT NULL")
	}

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 quotes and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	if filter.FromDate != "" {
		fromDate, e := parseDate(filter.FromDate)
		if e != nil {
			s := e.Error()
			c.JSON(http.StatusBadRequest, QuoteListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("datetime(quotes.created_at) >= datetime(?)", fromDate)
	}

	if filter.UntilDate != "" {
		untilDate, e := parseDate(filter.UntilDate)
		if e != nil {
			s := e.Error()
			c.JSON(http.StatusBadRequest, QuoteListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("datetime(quotes.created_at) <= datetime(?)", untilDate)
	}

	if !filter.TotalLessOrEqual.IsZero() {
		q = q.Where("quotes.total <= ?", filter.TotalLessOrEqual)
	}

	if !filter.TotalMoreOrEqual.IsZero() {
		q = q.Where("quotes.total >= ?", filter.TotalMoreOrEqual)
	}

	var quotes []models.Quote
	err = q.Find(&quotes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), QuoteListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Quote, 0, len(quotes))
	for _, quote := range quotes {
		data = append(data, newQuote(c, quote))
	}

	c.JSON(http.StatusOK, QuoteListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// parseDate parses a date query parameter. Both date-only values and
// full RFC3339 timestamps are accepted.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errDateInvalid
	}

	return t, nil
}

// @Summary		Get quote
// @Description	Returns a specific quote
// @Tags			Quotes
// @Produce		json
// @Success		200	{object}	QuoteResponse
// @Failure		400	{object}	QuoteResponse
// @Failure		404	{object}	QuoteResponse
// @Failure		500	{object}	QuoteResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id} [get]
func GetQuote(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	// Unscoped since trashed quotes stay readable until they are purged
	var quote models.Quote
	err = models.DB.Unscoped().First(&quote, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	apiResource := newQuote(c, quote)
	c.JSON(http.StatusOK, QuoteResponse{Data: &apiResource})
}

// @Summary		Update quote
// @Description	Updates an existing quote. Only values to be updated need to be specified.
// @Tags			Quotes
// @Accept			json
// @Produce		json
// @Success		200		{object}	QuoteResponse
// @Failure		400		{object}	QuoteResponse
// @Failure		404		{object}	QuoteResponse
// @Failure		500		{object}	QuoteResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			quote	body		QuoteEditable	true	"Quote"
// @Router			/v1/quotes/{id} [patch]
func UpdateQuote(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	var quote models.Quote
	err = models.DB.First(&quote, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, QuoteEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data QuoteEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&quote).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	apiResource := newQuote(c, quote)
	c.JSON(http.StatusOK, QuoteResponse{Data: &apiResource})
}

// @Summary		Delete quote
// @Description	Moves a quote to the trash. It stays recoverable until it is purged.
// @Tags			Quotes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id} [delete]
func DeleteQuote(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var quote models.Quote
	err = models.DB.First(&quote, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&quote).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Toggle quote status
// @Description	Advances the quote status in the cycle draft -> sent -> approved -> draft
// @Tags			Quotes
// @Produce		json
// @Success		200	{object}	QuoteResponse
// @Failure		400	{object}	QuoteResponse
// @Failure		404	{object}	QuoteResponse
// @Failure		500	{object}	QuoteResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id}/status [post]
func ToggleQuoteStatus(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	var quote models.Quote
	err = models.DB.First(&quote, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&quote).Select("Status").Updates(models.Quote{Status: quote.Status.Next()}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	apiResource := newQuote(c, quote)
	c.JSON(http.StatusOK, QuoteResponse{Data: &apiResource})
}

// @Summary		Restore quote
// @Description	Takes a quote out of the trash
// @Tags			Quotes
// @Produce		json
// @Success		200	{object}	QuoteResponse
// @Failure		400	{object}	QuoteResponse
// @Failure		404	{object}	QuoteResponse
// @Failure		500	{object}	QuoteResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id}/restore [post]
func RestoreQuote(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	var quote models.Quote
	err = models.DB.Unscoped().First(&quote, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	err = quote.Restore(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuoteResponse{
			Error: &e,
		})
		return
	}

	apiResource := newQuote(c, quote)
	c.JSON(http.StatusOK, QuoteResponse{Data: &apiResource})
}

// @Summary		Purge quote
// @Description	Permanently deletes a trashed quote and its items
// @Tags			Quotes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/quotes/{id}/purge [delete]
func PurgeQuote(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var quote models.Quote
	err = models.DB.Unscoped().First(&quote, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Only trashed quotes can be purged
	if quote.DeletedAt == nil || !quote.DeletedAt.Valid {
		c.JSON(http.StatusBadRequest, httpError{
			Error: models.ErrQuoteNotTrashed.Error(),
		})
		return
	}

	err = models.DB.Unscoped().Delete(&quote).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
