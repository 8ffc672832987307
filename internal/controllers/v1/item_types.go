package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quote-zero/backend/internal/models"
	"github.com/quote-zero/backend/internal/pricing"
	qz_uuid "github.com/quote-zero/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type ItemEditable struct {
	QuoteID      uuid.UUID            `json:"quoteId" example:"438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`                                                     // The quote this item belongs to
	Description  string               `json:"description" example:"Aluminium sheet 2mm" default:""`                                                       // Description of the line item
	Quantity     uint64               `json:"quantity" example:"3" minimum:"1" default:"1"`                                                               // Number of units
	UnitPrice    decimal.Decimal      `json:"unitPrice" example:"19.9" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"`   // Price of a single unit
	Discount     decimal.Decimal      `json:"discount" example:"10" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"`      // Discount, interpreted according to discountKind
	DiscountKind pricing.DiscountKind `json:"discountKind" example:"percentage" default:"percentage"`                                                     // How the discount is applied. One of: percentage, fixed
}

// model returns the database resource for the API representation of the editable fields
func (editable ItemEditable) model() models.Item {
	return models.Item{
		QuoteID:      editable.QuoteID,
		Description:  editable.Description,
		Quantity:     editable.Quantity,
		UnitPrice:    editable.UnitPrice,
		Discount:     editable.Discount,
		DiscountKind: editable.DiscountKind,
	}
}

type ItemLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/items/27eb19b8-c4a5-4b56-a28f-9d01c2e8a547"`    // The Item itself
	Quote string `json:"quote" example:"https://example.com/api/v1/quotes/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"` // The Quote this item belongs to
}

type Item struct {
	models.DefaultModel
	ItemEditable
	Total decimal.Decimal `json:"total" example:"53.73"` // Line total after the discount
	Links ItemLinks       `json:"links"`
}

// newItem returns the API v1 representation of the resource
func newItem(c *gin.Context, model models.Item) Item {
	url := c.GetString(string(models.DBContextURL))

	return Item{
		DefaultModel: model.DefaultModel,
		ItemEditable: ItemEditable{
			QuoteID:      model.QuoteID,
			Description:  model.Description,
			Quantity:     model.Quantity,
			UnitPrice:    model.UnitPrice,
			Discount:     model.Discount,
			DiscountKind: model.DiscountKind,
		},
		Total: model.Total,
		Links: ItemLinks{
			Self:  fmt.Sprintf("%s/v1/items/%s", url, model.ID),
			Quote: fmt.Sprintf("%s/v1/quotes/%s", url, model.QuoteID),
		},
	}
}

type ItemListResponse struct {
	Data       []Item      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ItemCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ItemResponse `json:"data"`                                                          // List of created resources
}

func (t *ItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ItemResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Item   `json:"data"`                                                          // The resource
}

type ItemQueryFilter struct {
	QuoteID      qz_uuid.UUID `form:"quote"`                           // By quote ID
	Description  string       `form:"description" filterField:"false"` // By description
	DiscountKind string       `form:"discountKind"`                    // By discount kind
	Offset       uint         `form:"offset" filterField:"false"`      // The offset of the first item returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`       // Maximum number of items to return. Defaults to 50.
}

func (f ItemQueryFilter) model() (models.Item, error) {
	if f.DiscountKind != "" && !pricing.DiscountKind(f.DiscountKind).Valid() {
		return models.Item{}, models.ErrDiscountKindInvalid
	}

	// This does not set the description since it is handled in the
	// controller function
	return models.Item{
		QuoteID:      f.QuoteID.UUID,
		DiscountKind: pricing.DiscountKind(f.DiscountKind),
	}, nil
}
