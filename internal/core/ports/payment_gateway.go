package ports

import "context"

// PaymentVerification is the gateway's verdict on one payment reference.
type PaymentVerification struct {
	Success       bool
	TransactionID string
}

// PaymentGateway confirms that a third-party payment actually happened
// before any balance is credited. Its answer is treated as authoritative.
type PaymentGateway interface {
	VerifyPayment(ctx context.Context, txRef, userID string) (*PaymentVerification, error)
}
