// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"shopfloor/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ScanEventRepoFactory provides access to the ledger repository within a
	// transaction.
	ScanEventRepoFactory interface {
		ScanEventRepository() ports.ScanEventRepository
	}

	// BatchRepoFactory provides access to the batch repository within a
	// transaction.
	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// DirectoryFactory provides access to the order/part directory within a
	// transaction.
	DirectoryFactory interface {
		OrderDirectory() ports.OrderDirectory
	}

	// LedgerUoW manages transactions for scan recording: ledger appends plus
	// the directory lifecycle write-back commit together.
	LedgerUoW interface {
		TxManager
		ScanEventRepoFactory
		DirectoryFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// BatchUoW manages transactions for batch-only operations (pause,
	// manual complete, delete).
	BatchUoW interface {
		TxManager
		BatchRepoFactory
	}

	// BatchUoWFactory creates new batch unit of work instances.
	BatchUoWFactory interface {
		Create() BatchUoW
	}

	// UoW manages transactions spanning batches, the ledger, and the
	// directory. Used by batch creation, start, and completion checking.
	UoW interface {
		TxManager
		ScanEventRepoFactory
		BatchRepoFactory
		DirectoryFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
