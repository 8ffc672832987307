package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/quote-zero/backend/internal/controllers/v1"
	"github.com/quote-zero/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuoteReport verifies the aggregation over the API. The bucket math
// itself is tested with the reports package.
func (suite *TestSuiteStandard) TestQuoteReport() {
	q1 := createTestQuote(suite.T(), v1.QuoteEditable{Freight: decimal.NewFromInt(100)})
	_ = createTestQuote(suite.T(), v1.QuoteEditable{Freight: decimal.NewFromInt(200)})

	// Trashed quotes are not counted
	trashed := createTestQuote(suite.T(), v1.QuoteEditable{Freight: decimal.NewFromInt(1000)})
	r := test.Request(suite.T(), http.MethodDelete, trashed.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/quotes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), uint(2), response.Data.Count)
	assert.True(suite.T(), decimal.NewFromInt(300).Equal(response.Data.Total), "Total is %s", response.Data.Total)
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(response.Data.Average), "Average is %s", response.Data.Average)

	// The default granularity is monthly with a year of lookback
	assert.Len(suite.T(), response.Data.Buckets, 13)
	assert.Equal(suite.T(), uint(2), response.Data.Buckets[len(response.Data.Buckets)-1].Count)

	// All three statuses are always reported
	require.Len(suite.T(), response.Data.Statuses, 3)
	assert.Equal(suite.T(), uint(2), response.Data.Statuses[0].Count)

	// Filtering by owner
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/quotes?owner=%s", q1.Data.OwnerID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), uint(1), response.Data.Count)
}

func (suite *TestSuiteStandard) TestQuoteReportPeriods() {
	_ = createTestQuote(suite.T(), v1.QuoteEditable{})

	for _, period := range []string{"day", "week", "month", "year"} {
		suite.T().Run(period, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/quotes?period=%s", period), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ReportResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Data)

			assert.Equal(t, uint(1), response.Data.Count)
			assert.NotEmpty(t, response.Data.Buckets)
		})
	}
}

func (suite *TestSuiteStandard) TestQuoteReportLocale() {
	tests := []struct {
		name   string
		locale string
		status int
	}{
		{"Sunday week start", "pt-BR", http.StatusOK},
		{"Monday week start", "de-DE", http.StatusOK},
		{"Language only", "ja", http.StatusOK},
		{"Invalid locale", "!!!", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/quotes?period=week&locale=%s", tt.locale), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestQuoteReportFails() {
	tests := []struct {
		name  string
		query string
	}{
		{"Invalid period", "period=decade"},
		{"Invalid owner", "owner=notauuid"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/quotes?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestQuoteReportDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/quotes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
