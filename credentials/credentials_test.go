package credentials

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"food-marketplace-api/models"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	h := Hasher{Cost: bcrypt.MinCost}
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	hash, err := h.HashPassword("pw", salt)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pw" || strings.Contains(hash, salt) {
		t.Fatalf("hash leaks input: %q", hash)
	}
	if !h.ValidatePassword("pw", hash, salt) {
		t.Error("expected password to validate with its salt")
	}
	if h.ValidatePassword("wrong", hash, salt) {
		t.Error("wrong password validated")
	}
	other, _ := GenerateSalt()
	if h.ValidatePassword("pw", hash, other) {
		t.Error("password validated with a different salt")
	}
}

func TestGenerateSaltIsFresh(t *testing.T) {
	a, _ := GenerateSalt()
	b, _ := GenerateSalt()
	if a == b {
		t.Fatalf("two salts are equal: %q", a)
	}
}

func TestLongPasswordsHash(t *testing.T) {
	h := Hasher{Cost: bcrypt.MinCost}
	long := strings.Repeat("x", 200)
	hash, err := h.HashPassword(long, "salt")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !h.ValidatePassword(long, hash, "salt") {
		t.Error("long password did not validate")
	}
}

func TestGenerateOTP(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	otp, expiry, err := GenerateOTP(now, 0)
	if err != nil {
		t.Fatalf("GenerateOTP: %v", err)
	}
	if otp < 100000 || otp > 999999 {
		t.Errorf("otp %d is not 6 digits", otp)
	}
	if !expiry.Equal(now.Add(DefaultOTPTTL)) {
		t.Errorf("expiry = %v, want %v", expiry, now.Add(DefaultOTPTTL))
	}
}

func TestVerifyOTP(t *testing.T) {
	expiry := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name      string
		submitted int
		now       time.Time
		want      bool
	}{
		{"match before expiry", 123456, expiry.Add(-time.Minute), true},
		{"match at expiry", 123456, expiry, true},
		{"one tick past expiry", 123456, expiry.Add(time.Nanosecond), false},
		{"mismatch", 654321, expiry.Add(-time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyOTP(123456, expiry, tt.submitted, tt.now); got != tt.want {
				t.Errorf("VerifyOTP = %v, want %v", got, tt.want)
			}
		})
	}
	if VerifyOTP(0, expiry, 0, expiry) {
		t.Error("an unset otp must never verify")
	}
}

func TestIssuerRoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	tok, err := iss.Issue(Claims{ActorID: "c1", Email: "a@b.com", Role: models.RoleCustomer, Verified: true})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.ActorID != "c1" || claims.Email != "a@b.com" || claims.Role != models.RoleCustomer || !claims.Verified {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestIssuerRejectsExpired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	start := time.Now()
	iss.now = func() time.Time { return start }
	tok, err := iss.Issue(Claims{ActorID: "c1"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := iss.Verify(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify err = %v, want ErrTokenExpired", err)
	}
}

func TestIssuerRejectsForeignSignature(t *testing.T) {
	tok, err := NewIssuer("other", time.Hour).Issue(Claims{ActorID: "c1"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewIssuer("secret", time.Hour).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify err = %v, want ErrInvalidToken", err)
	}
	if _, err := NewIssuer("secret", time.Hour).Verify("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify garbage err = %v, want ErrInvalidToken", err)
	}
}
