package utils

import (
	"net/mail"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength mirrors the minimum the hosted identity provider enforced.
const MinPasswordLength = 6

// HashPassword hashes a plain-text password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain-text password against a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsValidEmail reports whether s parses as an RFC 5322 address
func IsValidEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// IsWeakPassword reports whether the password fails the minimum length rule
func IsWeakPassword(password string) bool {
	return len(password) < MinPasswordLength
}
