package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quote-zero/backend/internal/models"
	qz_uuid "github.com/quote-zero/backend/internal/uuid"
)

type ProfileEditable struct {
	OwnerID  uuid.UUID `json:"ownerId" example:"d1b9c4a2-35fe-4a3a-b2dc-ef99fc63e1b2"`       // The owner this profile belongs to
	FullName string    `json:"fullName" example:"ACME Metalworks Ltda" default:""`           // Company or personal name printed on quotes
	TaxID    string    `json:"taxId" example:"12.345.678/0001-90" default:""`                // Tax ID of the company
	Email    string    `json:"email" example:"billing@example.com" default:""`               // Contact email address
	Phone    string    `json:"phone" example:"+55 11 98765-4321" default:""`                 // Contact phone number
	Address  string    `json:"address" example:"42 Industry Road" default:""`                // Street address
	LogoURL  string    `json:"logoUrl" example:"https://example.com/logo.png" default:""`    // URL of the company logo
}

// model returns the database resource for the API representation of the editable fields
func (editable ProfileEditable) model() models.Profile {
	return models.Profile{
		OwnerID:  editable.OwnerID,
		FullName: editable.FullName,
		TaxID:    editable.TaxID,
		Email:    editable.Email,
		Phone:    editable.Phone,
		Address:  editable.Address,
		LogoURL:  editable.LogoURL,
	}
}

type ProfileLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/profiles/9b1e5271-4c35-4f8b-a0a5-dd0f70db8a0f"` // The Profile itself
}

type Profile struct {
	models.DefaultModel
	ProfileEditable
	Links ProfileLinks `json:"links"`
}

// newProfile returns the API v1 representation of the resource
func newProfile(c *gin.Context, model models.Profile) Profile {
	url := c.GetString(string(models.DBContextURL))

	return Profile{
		DefaultModel: model.DefaultModel,
		ProfileEditable: ProfileEditable{
			OwnerID:  model.OwnerID,
			FullName: model.FullName,
			TaxID:    model.TaxID,
			Email:    model.Email,
			Phone:    model.Phone,
			Address:  model.Address,
			LogoURL:  model.LogoURL,
		},
		Links: ProfileLinks{
			Self: fmt.Sprintf("%s/v1/profiles/%s", url, model.ID),
		},
	}
}

type ProfileListResponse struct {
	Data       []Profile   `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ProfileCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ProfileResponse `json:"data"`                                                          // List of created resources
}

func (t *ProfileCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ProfileResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ProfileResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Profile `json:"data"`                                                          // The resource
}

type ProfileQueryFilter struct {
	OwnerID qz_uuid.UUID `form:"owner"`                      // By owner ID
	Email   string       `form:"email"`                      // By the exact email address
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first profile returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of profiles to return. Defaults to 50.
}

func (f ProfileQueryFilter) model() models.Profile {
	return models.Profile{
		OwnerID: f.OwnerID.UUID,
		Email:   f.Email,
	}
}
