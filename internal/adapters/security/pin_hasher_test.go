package security

import (
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPinHasher_HashCompareRoundtrip(t *testing.T) {
	nopLogger := zerolog.Nop()
	// MinCost keeps the test fast; production uses the default.
	hasher, err := NewBcryptPinHasher(bcrypt.MinCost, &nopLogger)
	if err != nil {
		t.Fatalf("Failed to create hasher: %v", err)
	}

	hash, err := hasher.Hash([]byte("1234"))
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "1234" || hash == "" {
		t.Fatalf("hash must not be empty or the plaintext PIN")
	}

	if err := hasher.Compare(hash, []byte("1234")); err != nil {
		t.Errorf("Compare rejected the correct PIN: %v", err)
	}
	if err := hasher.Compare(hash, []byte("4321")); err == nil {
		t.Errorf("Compare accepted the wrong PIN")
	}
}

func TestBcryptPinHasher_HashesAreSalted(t *testing.T) {
	nopLogger := zerolog.Nop()
	hasher, err := NewBcryptPinHasher(bcrypt.MinCost, &nopLogger)
	if err != nil {
		t.Fatalf("Failed to create hasher: %v", err)
	}

	first, _ := hasher.Hash([]byte("1234"))
	second, _ := hasher.Hash([]byte("1234"))
	if first == second {
		t.Errorf("two hashes of the same PIN must differ (missing salt?)")
	}
}

func TestNewBcryptPinHasher_CostValidation(t *testing.T) {
	nopLogger := zerolog.Nop()

	if _, err := NewBcryptPinHasher(0, &nopLogger); err != nil {
		t.Errorf("cost 0 should fall back to the default: %v", err)
	}
	if _, err := NewBcryptPinHasher(bcrypt.MaxCost+1, &nopLogger); err == nil {
		t.Errorf("out-of-range cost must be rejected")
	}
}

func TestBcryptPinHasher_MalformedStoredHash(t *testing.T) {
	nopLogger := zerolog.Nop()
	hasher, _ := NewBcryptPinHasher(bcrypt.MinCost, &nopLogger)

	if err := hasher.Compare("not-a-bcrypt-hash", []byte("1234")); err == nil {
		t.Errorf("Compare must reject a malformed stored hash")
	}
}
