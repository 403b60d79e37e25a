package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past the first 72 bytes of input.
const maxPasswordBytes = 72

var (
	ErrEmptyPassword   = fmt.Errorf("%w: password cannot be empty", ErrInvalidArgument)
	ErrPasswordTooLong = fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidArgument, maxPasswordBytes)
)

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the work factor used for new hashes.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt encoding of password, salt and cost included.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether raw matches hashed. It returns false for empty
// input or an unrecognised hash instead of an error.
func (h *Hasher) Verify(raw, hashed string) bool {
	if raw == "" || hashed == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
