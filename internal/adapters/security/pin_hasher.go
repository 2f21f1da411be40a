package security

import (
	"PoundsBosses/internal/core/ports"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// bcryptPinHasher implements the PinHasher interface using bcrypt.
// A PIN is only 4 digits, so the work factor is the whole defense
// against offline guessing of a leaked hash.
type bcryptPinHasher struct {
	cost int
	log  zerolog.Logger
}

var _ ports.PinHasher = (*bcryptPinHasher)(nil) // Ensure compliance

// NewBcryptPinHasher creates a new PIN hasher. Pass cost 0 to use the
// bcrypt default.
func NewBcryptPinHasher(cost int, baseLogger *zerolog.Logger) (ports.PinHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	log := baseLogger.With().Str("component", "pin_hasher").Logger()
	log.Info().Int("cost", cost).Msg("PIN hasher initialized")

	return &bcryptPinHasher{cost: cost, log: log}, nil
}

// Hash derives a bcrypt hash of the entered PIN.
func (h *bcryptPinHasher) Hash(pin []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(pin, h.cost)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash PIN")
		return "", fmt.Errorf("could not hash pin: %w", err)
	}
	return string(hash), nil
}

// Compare checks the entered PIN against a stored hash. Any mismatch or
// malformed stored hash reports a plain error; the caller decides what
// the rejection means.
func (h *bcryptPinHasher) Compare(storedHash string, pin []byte) error {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), pin)
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			h.log.Warn().Err(err).Msg("Stored PIN hash is malformed")
		}
		return err
	}
	return nil
}
