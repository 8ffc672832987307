package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/quote-zero/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestQuoteDefaults() {
	quote := suite.createTestQuote(models.Quote{ClientName: "ACME Corp"})

	assert.Equal(suite.T(), models.StatusDraft, quote.Status)
	assert.True(suite.T(), quote.Total.IsZero(), "total is %s, expected 0", quote.Total)
}

func (suite *TestSuiteStandard) TestQuoteTrimWhitespace() {
	clientName := "  ACME Corp \t"
	note := " Deliver before noon    "

	quote := suite.createTestQuote(models.Quote{
		ClientName: clientName,
		Note:       note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(clientName), quote.ClientName)
	assert.Equal(suite.T(), strings.TrimSpace(note), quote.Note)
}

func (suite *TestSuiteStandard) TestQuoteStatusNext() {
	status := models.StatusDraft

	// The cycle returns to draft after three toggles
	assert.Equal(suite.T(), models.StatusSent, status.Next())
	assert.Equal(suite.T(), models.StatusApproved, status.Next().Next())
	assert.Equal(suite.T(), models.StatusDraft, status.Next().Next().Next())
}

func (suite *TestSuiteStandard) TestQuoteStatusInvalid() {
	_, err := createQuote(models.Quote{Status: "negotiating"})
	assert.ErrorIs(suite.T(), err, models.ErrQuoteStatusInvalid)
}

func (suite *TestSuiteStandard) TestQuoteFreightNegative() {
	_, err := createQuote(models.Quote{Freight: decimal.NewFromInt(-5)})
	assert.ErrorIs(suite.T(), err, models.ErrFreightNegative)
}

// createQuote creates a quote directly, returning the error instead of
// failing the test. Used to verify validation.
func createQuote(quote models.Quote) (models.Quote, error) {
	err := models.DB.Create(&quote).Error
	return quote, err
}

func (suite *TestSuiteStandard) TestQuoteTotalRecalculation() {
	quote := suite.createTestQuote(models.Quote{
		ClientName: "ACME Corp",
		Freight:    decimal.NewFromInt(10),
	})

	reload := func() models.Quote {
		var q models.Quote
		require.NoError(suite.T(), models.DB.Unscoped().First(&q, quote.ID).Error)
		return q
	}

	// Empty quote, the total equals the freight
	assert.True(suite.T(), decimal.NewFromInt(10).Equal(reload().Total))

	// 2 * 100 - 10% = 180
	item := suite.createTestItem(models.Item{
		QuoteID:   quote.ID,
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(100),
		Discount:  decimal.NewFromInt(10),
	})
	assert.True(suite.T(), decimal.NewFromInt(190).Equal(reload().Total), "total is %s, expected 190", reload().Total)

	// 3 * 50 = 150
	second := suite.createTestItem(models.Item{
		QuoteID:   quote.ID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(50),
	})
	assert.True(suite.T(), decimal.NewFromInt(340).Equal(reload().Total), "total is %s, expected 340", reload().Total)

	// Switch the first item to a fixed discount: 2 * 100 - 10 = 190
	err := models.DB.Model(&item).Select("DiscountKind").Updates(models.Item{DiscountKind: "fixed"}).Error
	require.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(350).Equal(reload().Total), "total is %s, expected 350", reload().Total)

	// Remove the second item
	require.NoError(suite.T(), models.DB.Delete(&second).Error)
	assert.True(suite.T(), decimal.NewFromInt(200).Equal(reload().Total), "total is %s, expected 200", reload().Total)

	// Change the freight
	err = models.DB.Model(&quote).Select("Freight").Updates(models.Quote{Freight: decimal.NewFromInt(25)}).Error
	require.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(215).Equal(reload().Total), "total is %s, expected 215", reload().Total)
}

func (suite *TestSuiteStandard) TestQuoteItems() {
	quote := suite.createTestQuote(models.Quote{})
	other := suite.createTestQuote(models.Quote{})

	_ = suite.createTestItem(models.Item{QuoteID: quote.ID, UnitPrice: decimal.NewFromInt(1)})
	_ = suite.createTestItem(models.Item{QuoteID: quote.ID, UnitPrice: decimal.NewFromInt(2)})
	_ = suite.createTestItem(models.Item{QuoteID: other.ID, UnitPrice: decimal.NewFromInt(3)})

	items, err := quote.Items(models.DB)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 2)
}

func (suite *TestSuiteStandard) TestQuoteDaysRemaining() {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		deletedAt time.Time
		want      int
	}{
		{"just trashed", now.Add(-time.Hour), 30},
		{"one day left", now.AddDate(0, 0, -29), 1},
		{"expired", now.AddDate(0, 0, -31), -1},
		{"expires this instant", now.AddDate(0, 0, -30), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			deletedAt := gorm.DeletedAt{Time: tt.deletedAt, Valid: true}
			quote := models.Quote{
				DefaultModel: models.DefaultModel{
					Timestamps: models.Timestamps{DeletedAt: &deletedAt},
				},
			}

			assert.Equal(t, tt.want, quote.DaysRemaining(now))
		})
	}

	// Not in the trash
	assert.Equal(suite.T(), 0, models.Quote{}.DaysRemaining(now))
}

func (suite *TestSuiteStandard) TestQuoteRestore() {
	quote := suite.createTestQuote(models.Quote{ClientName: "ACME Corp"})

	// Restoring an active quote is an error
	err := quote.Restore(models.DB)
	assert.ErrorIs(suite.T(), err, models.ErrQuoteNotTrashed)

	require.NoError(suite.T(), models.DB.Delete(&quote).Error)

	// Gone from the default scope
	var q models.Quote
	err = models.DB.First(&q, quote.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// Load the trashed quote and restore it
	require.NoError(suite.T(), models.DB.Unscoped().First(&q, quote.ID).Error)
	require.NoError(suite.T(), q.Restore(models.DB))

	err = models.DB.First(&q, quote.ID).Error
	assert.NoError(suite.T(), err)
}

func (suite *TestSuiteStandard) TestQuotePurgeCascades() {
	quote := suite.createTestQuote(models.Quote{})
	item := suite.createTestItem(models.Item{QuoteID: quote.ID, UnitPrice: decimal.NewFromInt(5)})

	require.NoError(suite.T(), models.DB.Delete(&quote).Error)
	require.NoError(suite.T(), models.DB.Unscoped().Delete(&quote).Error)

	var count int64
	require.NoError(suite.T(), models.DB.Model(&models.Item{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count, "items must be deleted together with their quote")
}

func (suite *TestSuiteStandard) TestQuoteExportIncludesTrashed() {
	_ = suite.createTestQuote(models.Quote{ClientName: "Active"})
	trashed := suite.createTestQuote(models.Quote{ClientName: "Trashed"})
	require.NoError(suite.T(), models.DB.Delete(&trashed).Error)

	raw, err := models.Quote{}.Export()
	require.NoError(suite.T(), err)

	var quotes []models.Quote
	require.NoError(suite.T(), json.Unmarshal(raw, &quotes))
	assert.Len(suite.T(), quotes, 2)
}
