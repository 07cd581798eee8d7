package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOtpRangeAndExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		otp, expiry, err := GenerateOtp(now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, otp, 10000)
		assert.Less(t, otp, 910000)
		assert.Equal(t, now.Add(OtpTTL), expiry)
	}
}

func TestOtpMatches(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(OtpTTL)

	assert.True(t, OtpMatches(123456, expiry, 123456, now))
	assert.True(t, OtpMatches(123456, expiry, 123456, expiry))
	assert.False(t, OtpMatches(123456, expiry, 123456, expiry.Add(time.Millisecond)))
	assert.False(t, OtpMatches(123456, expiry, 654321, now))
	assert.False(t, OtpMatches(0, expiry, 0, now), "a redeemed otp cannot be reused")
}

func TestGenerateOrderCodeIsFiveDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOrderCode()
		require.NoError(t, err)
		assert.Len(t, code, 5)
		assert.GreaterOrEqual(t, code, "10000")
	}
}
