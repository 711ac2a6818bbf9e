package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "secret1" {
		t.Fatalf("unexpected hash: %q", hash)
	}

	ok, err := h.Verify("secret1", hash)
	if err != nil || !ok {
		t.Errorf("Verify(correct): ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil || ok {
		t.Errorf("Verify(wrong): ok=%v err=%v", ok, err)
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if _, err := h.Verify("secret1", "not-a-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
}

func TestNewBcryptHasher_CostClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultCost},
		{1, bcrypt.MinCost},
		{10, 10},
		{99, bcrypt.MaxCost},
	}
	for _, tt := range tests {
		if got := NewBcryptHasher(tt.in).Cost(); got != tt.want {
			t.Errorf("NewBcryptHasher(%d).Cost() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if _, err := h.Hash(strings.Repeat("a", MaxBytes)); err != nil {
		t.Errorf("Hash at limit: %v", err)
	}
	if _, err := h.Hash(strings.Repeat("a", MaxBytes+1)); !errors.Is(err, ErrTooLong) {
		t.Errorf("expected ErrTooLong, got %v", err)
	}
}
