package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions. Every multi-step
// lifecycle mutation (status write + history append, the reset cascade,
// plan persistence) runs inside ExecTx so a crash mid-sequence cannot
// leave the cascade partially applied.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
