package ledger

import "errors"

// Error taxonomy for the balance update service. Validation and
// authorization failures happen before any store write; callers surface
// them as form-level messages and nothing here is fatal.
var (
	// Validation errors.
	ErrAmountNotPositive      = errors.New("amount must be a positive number")
	ErrFundingBelowMinimum    = errors.New("funding amount is below the minimum")
	ErrWithdrawalBelowMinimum = errors.New("withdrawal amount is below the minimum")
	ErrInvalidPinFormat       = errors.New("transaction PIN must be exactly 4 digits")
	ErrAccountNameUnresolved  = errors.New("bank account name could not be verified")

	// Authorization errors.
	ErrPinNotSet  = errors.New("transaction PIN has not been set")
	ErrInvalidPin = errors.New("invalid transaction PIN")

	// State errors.
	ErrInsufficientBalance  = errors.New("insufficient available balance")
	ErrAccountNotFound      = errors.New("account not found")
	ErrBankAccountNotFound  = errors.New("bank account not found")
	ErrDuplicateBankAccount = errors.New("bank account is already saved")
	ErrPaymentNotVerified   = errors.New("payment could not be verified")
)
