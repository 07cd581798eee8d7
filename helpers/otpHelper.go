package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OtpTTL is how long an issued OTP may be redeemed.
const OtpTTL = 30 * time.Minute

// GenerateOtp returns a 5 or 6 digit code and its expiry.
func GenerateOtp(now time.Time) (int, time.Time, error) {
	n, err := randomInt(900000)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("generate otp: %w", err)
	}
	return 10000 + n, now.Add(OtpTTL), nil
}

// OtpMatches reports whether submitted redeems stored at time now.
func OtpMatches(stored int, expiry time.Time, submitted int, now time.Time) bool {
	return stored != 0 && stored == submitted && !now.After(expiry)
}

// GenerateOrderCode returns the human facing 5 digit order number.
func GenerateOrderCode() (string, error) {
	n, err := randomInt(90000)
	if err != nil {
		return "", fmt.Errorf("generate order code: %w", err)
	}
	return fmt.Sprintf("%d", 10000+n), nil
}

func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
