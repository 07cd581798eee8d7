package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodePrefersSpecificSentinels(t *testing.T) {
	assert.Equal(t, "EMPTY_CART", ErrorCode(fmt.Errorf("load: %w", ErrEmptyCart)))
	assert.Equal(t, "INVALID_TRANSACTION", ErrorCode(fmt.Errorf("%w: %w", ErrInvalidTransaction, ErrNotFound)))
	assert.Equal(t, "CONFLICT", ErrorCode(ErrDuplicateOrderID))
	assert.Equal(t, "VALIDATION", ErrorCode(ErrValidation))
	assert.Equal(t, "RATE_LIMITED", ErrorCode(ErrRateLimited))
	assert.Equal(t, "INTERNAL", ErrorCode(errors.New("boom")))
	assert.True(t, errors.Is(ErrMixedVendors, ErrValidation))
}
