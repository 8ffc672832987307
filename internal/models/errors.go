package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Quote errors
var (
	ErrQuoteStatusInvalid = errors.New("quote status must be one of: draft, sent, approved")
	ErrFreightNegative    = errors.New("the freight amount must not be negative")
	ErrQuoteNotTrashed    = errors.New("the quote is not in the trash")
)

// Item errors
var (
	ErrQuantityZero        = errors.New("item quantity must be at least 1")
	ErrUnitPriceNegative   = errors.New("the unit price must not be negative")
	ErrDiscountNegative    = errors.New("the discount must not be negative")
	ErrDiscountKindInvalid = errors.New("discount kind must be one of: percentage, fixed")
)

// Profile errors
var (
	ErrProfileExists = errors.New("a profile already exists for this owner")
)
