package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/quote-zero/backend/internal/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is a single line item of a quote.
type Item struct {
	DefaultModel
	QuoteID      uuid.UUID `gorm:"index"`
	Quote        Quote     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Description  string
	Quantity     uint64
	UnitPrice    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Discount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	DiscountKind pricing.DiscountKind
	Total        decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Derived from the other fields, never set directly
}

// BeforeCreate verifies that the referenced quote exists and is not
// in the trash.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	var quote Quote
	return tx.First(&quote, i.QuoteID).Error
}

// BeforeSave trims the description and defaults the discount kind.
func (i *Item) BeforeSave(_ *gorm.DB) error {
	i.Description = strings.TrimSpace(i.Description)

	if i.DiscountKind == "" {
		i.DiscountKind = pricing.DiscountPercentage
	}

	return nil
}

// AfterSave validates the saved state, computes the item total and
// recomputes the total of the quote the item belongs to. Everything
// runs on the transaction of the triggering mutation, an error rolls
// it back.
func (i *Item) AfterSave(tx *gorm.DB) error {
	if i.Quantity < 1 {
		return ErrQuantityZero
	}

	if i.UnitPrice.IsNegative() {
		return ErrUnitPriceNegative
	}

	if i.Discount.IsNegative() {
		return ErrDiscountNegative
	}

	if !i.DiscountKind.Valid() {
		return ErrDiscountKindInvalid
	}

	i.Total = pricing.ItemTotal(i.Quantity, i.UnitPrice, i.Discount, i.DiscountKind)

	// UpdateColumn skips the gorm hooks, otherwise AfterSave would
	// recurse forever
	err := tx.Model(&Item{}).Where("id = ?", i.ID).UpdateColumn("total", i.Total).Error
	if err != nil {
		return err
	}

	quote := Quote{DefaultModel: DefaultModel{ID: i.QuoteID}}
	return quote.RecalculateTotal(tx)
}

// AfterDelete recomputes the total of the quote the item belonged to.
func (i *Item) AfterDelete(tx *gorm.DB) error {
	quote := Quote{DefaultModel: DefaultModel{ID: i.QuoteID}}
	return quote.RecalculateTotal(tx)
}

// Returns all items on this instance for export
func (Item) Export() (json.RawMessage, error) {
	var items []Item
	err := DB.Unscoped().Where(&Item{}).Find(&items).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&items)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
