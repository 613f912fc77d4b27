package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and transaction-bound repository instances; client
// code manages the transaction lifecycle explicitly.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// ScanEventRepository returns a ledger repository bound to the current
	// transaction.
	ScanEventRepository() ScanEventRepository

	// BatchRepository returns a batch repository bound to the current
	// transaction.
	BatchRepository() BatchRepository

	// OrderDirectory returns a directory adapter bound to the current
	// transaction. The directory shares the shop database, so lifecycle
	// updates commit atomically with ledger writes.
	OrderDirectory() OrderDirectory
}
