package ports

// PinHasher defines the shared-secret comparison gate for transaction PINs.
// The stored form is a one-way hash; Compare must not be timing-sensitive
// on the candidate value.
type PinHasher interface {
	// Hash derives the storable form of a PIN.
	Hash(pin []byte) (string, error)

	// Compare checks a candidate PIN against a stored hash and returns
	// a non-nil error on mismatch.
	Compare(storedHash string, pin []byte) error
}
