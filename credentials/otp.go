package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	otpMin = 100000
	otpMax = 999999

	DefaultOTPTTL = 30 * time.Minute
)

// GenerateOTP returns a 6 digit code and its expiry. Storing a new pair
// replaces the previous one, which invalidates the old code.
func GenerateOTP(now time.Time, ttl time.Duration) (int, time.Time, error) {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("generate otp: %w", err)
	}
	return int(n.Int64()) + otpMin, now.Add(ttl), nil
}

// VerifyOTP succeeds iff the codes match and now is not past the expiry
func VerifyOTP(stored int, expiry time.Time, submitted int, now time.Time) bool {
	if stored == 0 || stored != submitted {
		return false
	}
	return !now.After(expiry)
}
