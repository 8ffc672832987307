package v1_test

import (
	"encoding/json"
	"net/http"
	"time"

	v1 "github.com/quote-zero/backend/internal/controllers/v1"
	"github.com/quote-zero/backend/internal/models"
	"github.com/quote-zero/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExport verifies that the export works correctly
//
// Thorough checks are only executed for the non-data fields since
// the data fields are populated by the Export() methods of the models
func (suite *TestSuiteStandard) TestExport() {
	t := suite.T()

	q := createTestQuote(t, v1.QuoteEditable{})
	i := createTestItem(t, v1.ItemEditable{QuoteID: q.Data.ID})

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(t, &recorder, &response)

	// Verify the version and clacks fields
	assert.Equal(t, "GNU Terry Pratchett", response.Clacks)
	assert.Equal(t, "0.0.0", response.Version)

	// Not sure if this is a good test, if it ever fails we'll re-evaluate
	now := time.Now()
	difference := response.CreationTime.Sub(now).Seconds()
	assert.Less(t, difference, float64(1))

	// Basic tests for the data fields. Full testing is done in the respective Export() methods
	// of the models
	assert.Len(t, response.Data, len(models.Registry), "Number of models in export does not match registry")

	// CreatedAt check for quote
	var quotes []models.Quote
	require.Nil(t, json.Unmarshal(response.Data["Quote"], &quotes))
	require.Len(t, quotes, 1, "Number of quotes in export must be 1")
	assert.Equal(t, q.Data.CreatedAt, quotes[0].CreatedAt)

	// CreatedAt check for item
	var items []models.Item
	require.Nil(t, json.Unmarshal(response.Data["Item"], &items))
	require.Len(t, items, 1, "Number of items in export must be 1")
	assert.Equal(t, i.Data.CreatedAt, items[0].CreatedAt)
}

func (suite *TestSuiteStandard) TestExportDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
