package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	// MinCost keeps the test fast
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" || hash == "s3cret-pass" {
		t.Errorf("Hash() = %q, want non-empty hash distinct from input", hash)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() = %q, want bcrypt format", hash)
	}

	if !hasher.Verify("s3cret-pass", hash) {
		t.Error("Verify() = false for correct password")
	}
	if hasher.Verify("wrong-pass", hash) {
		t.Error("Verify() = true for wrong password")
	}
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	if _, err := hasher.Hash(""); err == nil {
		t.Error("Hash(\"\") error = nil, want error")
	}
}

func TestPasswordHasher_HashesDiffer(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	h1, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, want salted hashes")
	}
}

func TestNewPasswordHasher_CostClamping(t *testing.T) {
	if h := NewPasswordHasherWithCost(0); h.cost != bcrypt.MinCost {
		t.Errorf("cost = %v, want clamped to %v", h.cost, bcrypt.MinCost)
	}
	if h := NewPasswordHasherWithCost(99); h.cost != bcrypt.MaxCost {
		t.Errorf("cost = %v, want clamped to %v", h.cost, bcrypt.MaxCost)
	}
	if h := NewPasswordHasher(); h.cost != DefaultCost {
		t.Errorf("cost = %v, want %v", h.cost, DefaultCost)
	}
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher()

	if hasher.Verify("anything", "not-a-bcrypt-hash") {
		t.Error("Verify() = true for malformed hash")
	}
}
