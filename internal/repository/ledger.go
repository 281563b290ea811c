package repository

import (
	"context"
)

// Ledger is the persistence boundary for gold balances.
// Debit must be a single conditional update: it never reads the balance in
// one round trip and writes it in another.
type Ledger interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	Debit(ctx context.Context, userID string, amount int64) (int64, error)
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
}
