package ledger

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"errors"
)

// pinPattern: exactly 4 ASCII digits.
func validPinFormat(pin []byte) bool {
	if len(pin) != 4 {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ErrAuthorizationSpent guards against reusing a consumed authorization.
var ErrAuthorizationSpent = errors.New("authorization has already been decided")

// Authorization is the withdrawal gate. It starts awaiting a PIN and makes
// exactly one transition, to verified or rejected. A rejected or verified
// authorization cannot be retried; callers build a fresh one per attempt.
type Authorization struct {
	state domain.PinAuthState
}

// NewAuthorization returns a gate in the awaiting state.
func NewAuthorization() *Authorization {
	return &Authorization{state: domain.PinAwaitingEntry}
}

// State exposes the current machine state.
func (a *Authorization) State() domain.PinAuthState {
	return a.state
}

// Verified reports whether the gate has passed.
func (a *Authorization) Verified() bool {
	return a.state == domain.PinVerified
}

// Verify compares the entered PIN against the stored hash and transitions
// the machine. The entered PIN is wiped from memory before returning,
// whatever the outcome.
func (a *Authorization) Verify(hasher ports.PinHasher, storedHash string, pin []byte) error {
	defer wipe(pin)

	if a.state != domain.PinAwaitingEntry {
		return ErrAuthorizationSpent
	}
	if !validPinFormat(pin) {
		a.state = domain.PinRejected
		return ErrInvalidPinFormat
	}
	if err := hasher.Compare(storedHash, pin); err != nil {
		a.state = domain.PinRejected
		return ErrInvalidPin
	}

	a.state = domain.PinVerified
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
