package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quote-zero/backend/internal/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RetentionDays is the number of days a soft-deleted quote stays
// recoverable. The countdown is informational only, expired quotes
// are never purged automatically.
const RetentionDays = 30

// QuoteStatus is the lifecycle status of a quote.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "draft"
	StatusSent     QuoteStatus = "sent"
	StatusApproved QuoteStatus = "approved"
)

// Valid reports whether the status is a known one.
func (s QuoteStatus) Valid() bool {
	return s == StatusDraft || s == StatusSent || s == StatusApproved
}

// Next returns the status that follows in the cycle
// draft -> sent -> approved -> draft.
func (s QuoteStatus) Next() QuoteStatus {
	switch s {
	case StatusDraft:
		return StatusSent
	case StatusSent:
		return StatusApproved
	}

	return StatusDraft
}

// Quote represents a commercial quote for a client.
//
// A quote owns its line items exclusively. Its total is the sum of
// all item totals plus the freight amount and is kept up to date
// transactionally by the gorm hooks of Quote and Item.
type Quote struct {
	DefaultModel
	OwnerID       uuid.UUID `gorm:"index"`
	ClientName    string
	TaxID         string
	Address       string
	PostalCode    string
	Phone         string
	PaymentMethod string
	Note          string
	Freight       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Total         decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Derived from the items and freight, never set directly
	Status        QuoteStatus
}

// BeforeSave trims the string fields and defaults the status for new
// quotes.
func (q *Quote) BeforeSave(_ *gorm.DB) error {
	q.ClientName = strings.TrimSpace(q.ClientName)
	q.TaxID = strings.TrimSpace(q.TaxID)
	q.Address = strings.TrimSpace(q.Address)
	q.PostalCode = strings.TrimSpace(q.PostalCode)
	q.Phone = strings.TrimSpace(q.Phone)
	q.PaymentMethod = strings.TrimSpace(q.PaymentMethod)
	q.Note = strings.TrimSpace(q.Note)

	if q.Status == "" {
		q.Status = StatusDraft
	}

	return nil
}

// AfterSave validates the saved state and recomputes the persisted
// total. Validation happens here because on updates the incoming
// fields are merged into the model only after BeforeSave has run.
// An error rolls back the whole transaction.
func (q *Quote) AfterSave(tx *gorm.DB) error {
	if !q.Status.Valid() {
		return ErrQuoteStatusInvalid
	}

	if q.Freight.IsNegative() {
		return ErrFreightNegative
	}

	return q.RecalculateTotal(tx)
}

// Items returns the line items of the quote.
func (q Quote) Items(db *gorm.DB) ([]Item, error) {
	var items []Item

	err := db.Where(&Item{QuoteID: q.ID}).Order("datetime(created_at) ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// RecalculateTotal recomputes the quote total from its current items
// and freight and persists it. It runs on the transaction of the
// triggering mutation, so the persisted total can never diverge from
// the items.
func (q *Quote) RecalculateTotal(tx *gorm.DB) error {
	// Unscoped so that mutations on trashed quotes keep the total
	// correct for a later restore
	var quote Quote
	err := tx.Unscoped().First(&quote, q.ID).Error
	if err != nil {
		return err
	}

	var items []Item
	err = tx.Where(&Item{QuoteID: q.ID}).Find(&items).Error
	if err != nil {
		return err
	}

	itemTotals := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		itemTotals = append(itemTotals, item.Total)
	}

	total := pricing.QuoteTotal(itemTotals, quote.Freight)
	q.Total = total

	// UpdateColumn skips the gorm hooks, otherwise AfterSave would
	// recurse forever
	return tx.Unscoped().Model(&Quote{}).Where("id = ?", q.ID).UpdateColumn("total", total).Error
}

// DaysRemaining returns the number of days the quote stays in the
// trash before it is eligible for purging, rounding up. Values of
// zero or less mark the quote as eligible, purging is still manual.
func (q Quote) DaysRemaining(now time.Time) int {
	if q.DeletedAt == nil || !q.DeletedAt.Valid {
		return 0
	}

	remaining := q.DeletedAt.Time.AddDate(0, 0, RetentionDays).Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}

	return days
}

// Restore takes the quote out of the trash.
func (q *Quote) Restore(db *gorm.DB) error {
	if q.DeletedAt == nil || !q.DeletedAt.Valid {
		return ErrQuoteNotTrashed
	}

	err := db.Unscoped().Model(q).Update("deleted_at", nil).Error
	if err != nil {
		return err
	}

	q.DeletedAt = nil
	return nil
}

// Returns all quotes on this instance for export, including trashed ones
func (Quote) Export() (json.RawMessage, error) {
	var quotes []Quote
	err := DB.Unscoped().Where(&Quote{}).Find(&quotes).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&quotes)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
