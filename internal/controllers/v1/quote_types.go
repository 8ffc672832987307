package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quote-zero/backend/internal/models"
	qz_uuid "github.com/quote-zero/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type QuoteEditable struct {
	OwnerID       uuid.UUID       `json:"ownerId" example:"d1b9c4a2-35fe-4a3a-b2dc-ef99fc63e1b2"`                                                 // The owner drafting the quote
	ClientName    string          `json:"clientName" example:"ACME Corp" default:""`                                                              // Name of the client the quote is for
	TaxID         string          `json:"taxId" example:"12.345.678/0001-90" default:""`                                                          // Tax ID of the client
	Address       string          `json:"address" example:"42 Industry Road" default:""`                                                          // Street address of the client
	PostalCode    string          `json:"postalCode" example:"04550-004" default:""`                                                              // Postal code of the client
	Phone         string          `json:"phone" example:"+55 11 98765-4321" default:""`                                                           // Phone number of the client
	PaymentMethod string          `json:"paymentMethod" example:"bank transfer" default:""`                                                       // Agreed payment method
	Note          string          `json:"note" example:"Delivery on workdays only" default:""`                                                    // Free-form note on the quote
	Freight       decimal.Decimal `json:"freight" example:"25.9" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // Freight amount added on top of the items
}

// model returns the database resource for the API representation of the editable fields
func (editable QuoteEditable) model() models.Quote {
	return models.Quote{
		OwnerID:       editable.OwnerID,
		ClientName:    editable.ClientName,
		TaxID:         editable.TaxID,
		Address:       editable.Address,
		PostalCode:    editable.PostalCode,
		Phone:         editable.Phone,
		PaymentMethod: editable.PaymentMethod,
		Note:          editable.Note,
		Freight:       editable.Freight,
	}
}

type QuoteLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/quotes/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`        // The Quote itself
	Items string `json:"items" example:"https://example.com/api/v1/items?quote=438cc6c0-9baf-49fd-a75a-d76bd5cab19c"` // The line items of the quote
}

type Quote struct {
	models.DefaultModel
	QuoteEditable
	Status        models.QuoteStatus `json:"status" example:"draft"`   // Lifecycle status of the quote
	Total         decimal.Decimal    `json:"total" example:"1234.5"`   // Sum of all item totals plus freight
	DaysRemaining int                `json:"daysRemaining" example:"0"` // Days left in the trash before the quote can be purged. Only meaningful for trashed quotes
	Links         QuoteLinks         `json:"links"`
}

// newQuote returns the API v1 representation of the resource
func newQuote(c *gin.Context, model models.Quote) Quote {
	url := c.GetString(string(models.DBContextURL))

	return Quote{
		DefaultModel: model.DefaultModel,
		QuoteEditable: QuoteEditable{
			OwnerID:       model.OwnerID,
			ClientName:    model.ClientName,
			TaxID:         model.TaxID,
			Address:       model.Address,
			PostalCode:    model.PostalCode,
			Phone:         model.Phone,
			PaymentMethod: model.PaymentMethod,
			Note:          model.Note,
			Freight:       model.Freight,
		},
		Status:        model.Status,
		Total:         model.Total,
		DaysRemaining: model.DaysRemaining(time.Now().In(time.UTC)),
		Links: QuoteLinks{
			Self:  fmt.Sprintf("%s/v1/quotes/%s", url, model.ID),
			Items: fmt.Sprintf("%s/v1/items?quote=%s", url, model.ID),
		},
	}
}

type QuoteListResponse struct {
	Data       []Quote     `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type QuoteCreateResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []QuoteResponse `json:"data"`                                                          // List of created resources
}

func (t *QuoteCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, QuoteResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type QuoteResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Quote  `json:"data"`                                                          // The resource
}

type QuoteQueryFilter struct {
	OwnerID          qz_uuid.UUID    `form:"owner"`                                // By owner ID
	Status           string          `form:"status"`                               // By lifecycle status
	PaymentMethod    string          `form:"paymentMethod"`                        // By payment method
	TaxID            string          `form:"taxId"`                                // By the exact tax ID of the client
	Name             string          `form:"name" filterField:"false"`             // By client name
	Note             string          `form:"note" filterField:"false"`             // By the note
	Search           string          `form:"search" filterField:"false"`           // By string in client name or note
	Trashed          bool            `form:"trashed" filterField:"false"`          // Only list trashed quotes
	TotalLessOrEqual decimal.Decimal `form:"totalLessOrEqual" filterField:"false"` // Total less than or equal to this
	TotalMoreOrEqual decimal.Decimal `form:"totalMoreOrEqual" filterField:"false"` // Total more than or equal to this
	FromDate         string          `form:"fromDate" filterField:"false"`         // Quotes drafted on or after this date
	UntilDate        string          `form:"untilDate" filterField:"false"`        // Quotes drafted on or before this date
	Order            string          `form:"order" filterField:"false"`            // Sort order for the drafting date. Defaults to desc.
	Offset           uint            `form:"offset" filterField:"false"`           // The offset of the first quote returned. Defaults to 0.
	Limit            int             `form:"limit" filterField:"false"`            // Maximum number of quotes to return. Defaults to 50.
}

func (f QuoteQueryFilter) model() (models.Quote, error) {
	if f.Status != "" && !models.QuoteStatus(f.Status).Valid() {
		return models.Quote{}, models.ErrQuoteStatusInvalid
	}

	// This does not set the string filter fields since they are
	// handled in the controller function
	return models.Quote{
		OwnerID:       f.OwnerID.UUID,
		Status:        models.QuoteStatus(f.Status),
		PaymentMethod: f.PaymentMethod,
		TaxID:         f.TaxID,
	}, nil
}
