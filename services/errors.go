package services

import "errors"

// Business-rule failures surfaced to callers. Every rejected order or
// settlement aborts its transaction, so none of these leave partial state.
var (
	ErrValidationFailed        = errors.New("validation failed")
	ErrItemNotFound            = errors.New("menu item not found")
	ErrItemUnavailable         = errors.New("menu item is not available")
	ErrMealTimeMismatch        = errors.New("menu item is not offered for the requested meal time")
	ErrNotAvailableForPreOrder = errors.New("menu item is not available for pre-order")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInvalidScheduling       = errors.New("pre-order time is outside the allowed window")

	ErrLedgerNotFound       = errors.New("ledger not found")
	ErrInvalidAmount        = errors.New("settlement amount must be greater than zero")
	ErrPartialNotPermitted  = errors.New("partial settlement is not permitted for this ledger")
	ErrAmountExceedsBalance = errors.New("settlement amount exceeds ledger balance")
)
