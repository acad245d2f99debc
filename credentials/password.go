package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const saltBytes = 16

// Hasher hashes passwords with a per-actor salt. Cost is the bcrypt cost;
// zero means bcrypt.DefaultCost.
type Hasher struct {
	Cost int
}

// GenerateSalt returns a fresh random salt for a new actor
func GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPassword salts the password and hashes it with bcrypt. The salted
// input is pre-hashed with sha256 so it always fits bcrypt's 72 byte limit.
func (h Hasher) HashPassword(password, salt string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(salted(password, salt), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ValidatePassword recomputes the salted input and compares it with the stored hash
func (h Hasher) ValidatePassword(password, hash, salt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), salted(password, salt)) == nil
}

func salted(password, salt string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}
