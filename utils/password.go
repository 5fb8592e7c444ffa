package utils

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier turns a password into its stored form and checks attempts against it.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// BcryptVerifier stores bcrypt hashes.
type BcryptVerifier struct {
	Cost int
}

// Hash implements CredentialVerifier.
func (b BcryptVerifier) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify implements CredentialVerifier.
func (b BcryptVerifier) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// PlainVerifier stores passwords verbatim and compares by exact equality.
// Only meant for reproducing legacy data; never the default.
type PlainVerifier struct{}

// Hash implements CredentialVerifier.
func (PlainVerifier) Hash(password string) (string, error) { return password, nil }

// Verify implements CredentialVerifier.
func (PlainVerifier) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// NewCredentialVerifier picks the verifier for a configured scheme name.
func NewCredentialVerifier(scheme string) (CredentialVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "bcrypt":
		return BcryptVerifier{Cost: bcrypt.DefaultCost}, nil
	case "plain":
		Sugar.Warn("password scheme 'plain' stores passwords unhashed")
		return PlainVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
