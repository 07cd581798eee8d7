package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("too many requests")
)

var (
	ErrEmptyCart          = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrInvalidTransaction = fmt.Errorf("%w: invalid transaction", ErrValidation)
	ErrAmountMismatch     = fmt.Errorf("%w: paid amount does not match order total", ErrValidation)
	ErrMixedVendors       = fmt.Errorf("%w: cart contains food from more than one vendor", ErrValidation)
	ErrDuplicateOrderID   = fmt.Errorf("%w: order id already taken", ErrConflict)
)

// ErrNoDeliveryAvailable is reported alongside a settled order, never as a
// settlement failure.
var ErrNoDeliveryAvailable = errors.New("no delivery partner available")

// ErrorCode gives the machine readable code surfaced to API clients.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "EMPTY_CART"
	case errors.Is(err, ErrInvalidTransaction):
		return "INVALID_TRANSACTION"
	case errors.Is(err, ErrAmountMismatch):
		return "AMOUNT_MISMATCH"
	case errors.Is(err, ErrMixedVendors):
		return "MIXED_VENDORS"
	case errors.Is(err, ErrNoDeliveryAvailable):
		return "NO_DELIVERY_AVAILABLE"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	default:
		return "INTERNAL"
	}
}
