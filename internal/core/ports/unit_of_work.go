package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per intake request.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction around the single write of the intake
// pipeline: the order row, its line items and its audit entry are committed
// together or not at all.
type UnitOfWork interface {
	// Begin opens the transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit fails when Begin was never called.
	Commit(ctx context.Context) error

	// Rollback discards everything written since Begin. It is safe to defer
	// after a successful Commit; the error is then ignorable.
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the open transaction.
	OrderRepository() OrderRepository
}
