package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/quote-zero/backend/internal/controllers/v1"
	"github.com/quote-zero/backend/internal/models"
	"github.com/quote-zero/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestProfile(t *testing.T, p v1.ProfileEditable, expectedStatus ...int) v1.ProfileResponse {
	if p.OwnerID == uuid.Nil {
		p.OwnerID = uuid.New()
	}

	if p.FullName == "" {
		p.FullName = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.ProfileEditable{p}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/profiles", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var profile v1.ProfileCreateResponse
	test.DecodeResponse(t, &r, &profile)

	if r.Code == http.StatusCreated {
		return profile.Data[0]
	}

	return v1.ProfileResponse{}
}

// TestProfilesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestProfilesDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestProfile(t, v1.ProfileEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/profiles", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.ProfileListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestProfilesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestProfilesOptions() {
	tests := []struct {
		name   string
		id     string // path at the profiles endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Profile with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Profile exists", createTestProfile(suite.T(), v1.ProfileEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/profiles", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestProfilesGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestProfilesGetSingle() {
	p := createTestProfile(suite.T(), v1.ProfileEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Profile", p.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Profile with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/profiles/%s", tt.id), "")

			var profile v1.ProfileResponse
			test.DecodeResponse(t, &r, &profile)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesGetFilter() {
	p := createTestProfile(suite.T(), v1.ProfileEditable{
		FullName: "ACME Metalworks Ltda",
		Email:    "billing@example.com",
	})

	_ = createTestProfile(suite.T(), v1.ProfileEditable{
		FullName: "Steelworks & Sons",
		Email:    "contact@example.com",
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Owner", fmt.Sprintf("owner=%s", p.Data.OwnerID), 1},
		{"Owner Not Existing", "owner=c9e4ee7a-e702-4f92-b168-11a95b22c7aa", 0},
		{"Email", "email=billing@example.com", 1},
		{"Limit 1", "limit=1", 1},
		{"Offset 1", "offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.ProfileListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/profiles?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesCreateFails() {
	p := createTestProfile(suite.T(), v1.ProfileEditable{})

	tests := []struct {
		name     string
		body     any
		status   int                                            // expected HTTP status
		testFunc func(t *testing.T, p v1.ProfileCreateResponse) // tests to perform against the response
	}{
		{
			"Broken Body", `[{ "fullName": 2 }]`, http.StatusBadRequest,
			func(t *testing.T, p v1.ProfileCreateResponse) {
				assert.Equal(t, "json: cannot unmarshal number into Go struct field ProfileEditable.fullName of type string", *p.Error)
			},
		},
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, p v1.ProfileCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *p.Error)
			},
		},
		{
			"Duplicate owner",
			[]v1.ProfileEditable{{OwnerID: p.Data.OwnerID, FullName: "Second profile"}},
			http.StatusBadRequest,
			func(t *testing.T, p v1.ProfileCreateResponse) {
				assert.Equal(t, models.ErrProfileExists.Error(), *p.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/profiles", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var p v1.ProfileCreateResponse
			test.DecodeResponse(t, &r, &p)

			if tt.testFunc != nil {
				tt.testFunc(t, p)
			}
		})
	}
}

// Verify that updating profiles works as desired
func (suite *TestSuiteStandard) TestProfilesUpdate() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{FullName: "Before the rebranding"})

	tests := []struct {
		name     string                                   // name of the test
		profile  map[string]any                           // the updates to perform. This is not a struct because that would set all fields on the request
		testFunc func(t *testing.T, p v1.ProfileResponse) // tests to perform against the updated profile resource
	}{
		{
			"Full name, Email",
			map[string]any{
				"fullName": "After the rebranding",
				"email":    "hello@example.com",
			},
			func(t *testing.T, p v1.ProfileResponse) {
				assert.Equal(t, "After the rebranding", p.Data.FullName)
				assert.Equal(t, "hello@example.com", p.Data.Email)
			},
		},
		{
			"Logo",
			map[string]any{
				"logoUrl": "https://example.com/logo.png",
			},
			func(t *testing.T, p v1.ProfileResponse) {
				assert.Equal(t, "https://example.com/logo.png", p.Data.LogoURL)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, profile.Data.Links.Self, tt.profile)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var p v1.ProfileResponse
			test.DecodeResponse(t, &r, &p)

			if tt.testFunc != nil {
				tt.testFunc(t, p)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesDelete() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{})

	r := test.Request(suite.T(), http.MethodDelete, profile.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, profile.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
