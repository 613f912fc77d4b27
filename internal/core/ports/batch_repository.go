package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for batch aggregates.
type BatchRepository interface {
	// Add persists a new batch aggregate.
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Update persists status/completion changes to an existing batch. The
	// member order list is fixed at creation and never updated.
	Update(ctx context.Context, aggregate *batch.Batch) error

	// Get retrieves a batch by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// Delete removes a batch record. Deleting a batch never un-scans its
	// parts or touches the underlying orders.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllInStatus retrieves all batches currently in the given status,
	// e.g. Processing for the completion poll.
	GetAllInStatus(ctx context.Context, status batch.Status) ([]*batch.Batch, error)

	// GetActiveBatchOrderIDs returns, for every active (non-Completed)
	// batch, the ids of its member orders mapped to the owning batch id.
	// The map is keyed by order id string. Used to enforce the invariant
	// that an order belongs to at most one active batch.
	GetActiveBatchOrderIDs(ctx context.Context) (map[string]kernel.UUID, error)
}
