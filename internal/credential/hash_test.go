package credential

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost)
}

func TestNewHasherCost(t *testing.T) {
	tests := []struct {
		cost int
		want int
	}{
		{cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{cost: 12, want: 12},
		{cost: 0, want: bcrypt.DefaultCost},
		{cost: bcrypt.MaxCost + 1, want: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		if got := NewHasher(tt.cost).Cost(); got != tt.want {
			t.Errorf("NewHasher(%d).Cost() = %d, want %d", tt.cost, got, tt.want)
		}
	}
}

func TestHash(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("bapetiku")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	if hash == "bapetiku" {
		t.Fatal("Hash() returned the plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$04$") {
		t.Errorf("Hash() = %q, want $2a$04$ prefix", hash)
	}
}

func TestHashEmpty(t *testing.T) {
	_, err := newTestHasher().Hash("")
	if !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Hash() error = %v, want %v", err, ErrEmptyPassword)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Hash() error = %v, want it to wrap ErrInvalidArgument", err)
	}
}

func TestHashTooLong(t *testing.T) {
	_, err := newTestHasher().Hash(strings.Repeat("a", maxPasswordBytes+1))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Hash() error = %v, want %v", err, ErrPasswordTooLong)
	}
}

func TestHashProducesDifferentHashes(t *testing.T) {
	h := newTestHasher()

	hash1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	hash2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerifyCorrect(t *testing.T) {
	h := newTestHasher()
	g := NewGenerator(nil)

	for i := 0; i < 5; i++ {
		password, err := g.Password(8)
		if err != nil {
			t.Fatalf("Password() unexpected error: %v", err)
		}
		hash, err := h.Hash(password)
		if err != nil {
			t.Fatalf("Hash() unexpected error: %v", err)
		}
		if !h.Verify(password, hash) {
			t.Errorf("Verify() returned false for %q", password)
		}
	}
}

func TestVerifyWrong(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if h.Verify("wrong-password", hash) {
		t.Error("Verify() returned true for wrong password")
	}
}

func TestVerifyInvalidInput(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		raw    string
		hashed string
	}{
		{name: "empty raw", raw: "", hashed: hash},
		{name: "empty hash", raw: "password", hashed: ""},
		{name: "both empty", raw: "", hashed: ""},
		{name: "unrecognised hash", raw: "password", hashed: "invalid-hash-format"},
		{name: "plaintext as hash", raw: "password", hashed: "password"},
		{name: "truncated hash", raw: "password", hashed: hash[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if h.Verify(tt.raw, tt.hashed) {
				t.Error("Verify() returned true, want false")
			}
		})
	}
}

func TestVerifyAcceptsOtherBcryptVariants(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("bapetiku")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	variant := "$2b$" + strings.TrimPrefix(hash, "$2a$")
	if !h.Verify("bapetiku", variant) {
		t.Error("Verify() returned false for $2b$ encoded hash")
	}
}
