package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when an email is unknown, so that failed
// logins cost the same whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// A mismatch is not an error.
func VerifyPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// HashPassword exists for fixtures and seeding; this service never writes
// user records.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
