package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrHash indicates an internal failure while hashing a password.
	ErrHash = errors.New("password hashing failed")

	// ErrCompare indicates an internal failure while comparing a password
	// against a stored hash. A plain mismatch is not an error.
	ErrCompare = errors.New("password comparison failed")
)

// DefaultCost is the bcrypt work factor used when none is specified.
const DefaultCost = bcrypt.DefaultCost

// PasswordHasher hashes plaintext passwords for storage and verifies
// login attempts against stored hashes. bcrypt embeds a random salt in
// every hash and compares in constant time.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Costs
// outside the valid bcrypt range fall back to DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the salted bcrypt hash of plaintext. The plaintext is
// never logged or echoed back on failure.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHash, err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch
// and a malformed stored hash both yield (false, nil); only a genuine
// internal failure returns an error.
func (h *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	case isMalformedHash(err):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrCompare, err)
	}
}

func isMalformedHash(err error) bool {
	var prefixErr bcrypt.InvalidHashPrefixError
	var versionErr bcrypt.HashVersionTooNewError
	var costErr bcrypt.InvalidCostError
	return errors.Is(err, bcrypt.ErrHashTooShort) ||
		errors.As(err, &prefixErr) ||
		errors.As(err, &versionErr) ||
		errors.As(err, &costErr)
}
