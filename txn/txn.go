// Package txn defines the transaction boundary used by the usecases.
package txn

import "context"

// Func runs inside a transaction. The context it receives carries the
// transaction, so repositories called with it join the same unit of work.
type Func func(ctx context.Context) error

// Transactor runs fn in a single transaction: committed when fn returns nil,
// rolled back when it returns an error or panics.
type Transactor interface {
	WithinTx(ctx context.Context, fn Func) error
}

// Passthrough runs fn directly. It backs usecases in tests and in setups
// without a transactional store.
type Passthrough struct{}

func (Passthrough) WithinTx(ctx context.Context, fn Func) error {
	return fn(ctx)
}
