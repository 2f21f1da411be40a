package ports

import "context"

// BankResolver resolves an account number + bank code pair to the verified
// account holder name. An empty name means the destination failed
// verification and must not be saved.
type BankResolver interface {
	ResolveAccountName(ctx context.Context, accountNumber, bankCode string) (string, error)
}
