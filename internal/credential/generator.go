package credential

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	vowels     = "aeiou"
	consonants = "bcdfghjklmnprstvwxyz"

	DefaultPasswordLength = 8
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidLength = fmt.Errorf("%w: password length must be positive", ErrInvalidArgument)
	ErrEmptyName     = fmt.Errorf("%w: full name cannot be empty", ErrInvalidArgument)
	ErrInvalidName   = fmt.Errorf("%w: full name must contain at least two parts", ErrInvalidArgument)
)

// Generator produces usernames and pronounceable passwords.
// The random source must be safe for concurrent use; crypto/rand.Reader is.
type Generator struct {
	random io.Reader
}

// NewGenerator creates a Generator reading randomness from random.
// A nil reader selects crypto/rand.Reader.
func NewGenerator(random io.Reader) *Generator {
	if random == nil {
		random = rand.Reader
	}
	return &Generator{random: random}
}

// Username derives a lowercase firstname.lastname username from a full name.
// Middle names are dropped: "John Michael Doe" becomes "john.doe".
func (g *Generator) Username(fullName string) (string, error) {
	if strings.TrimSpace(fullName) == "" {
		return "", ErrEmptyName
	}

	parts := strings.Fields(strings.ToLower(fullName))
	if len(parts) < 2 {
		return "", ErrInvalidName
	}

	return parts[0] + "." + parts[len(parts)-1], nil
}

// Password creates a password of exactly length characters that alternates
// between vowels and consonants, starting with a randomly chosen class.
func (g *Generator) Password(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	start, err := g.intn(2)
	if err != nil {
		return "", err
	}
	useVowel := start == 0

	var b strings.Builder
	b.Grow(length)

	for b.Len() < length {
		charset := consonants
		if useVowel {
			charset = vowels
		}

		ch, err := g.pick(charset)
		if err != nil {
			return "", err
		}
		b.WriteByte(ch)
		useVowel = !useVowel
	}

	return b.String()[:length], nil
}

// pick returns a uniformly chosen byte of charset.
func (g *Generator) pick(charset string) (byte, error) {
	n, err := g.intn(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}
