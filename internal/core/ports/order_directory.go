package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
)

// DirectoryOrder is the read model this core needs from the Order/Part
// Directory: identification and display fields plus the human-readable
// lifecycle status field the core keeps refreshed.
type DirectoryOrder struct {
	ID              kernel.UUID
	Number          string
	Customer        string
	PanelCount      int
	LifecycleStatus string
}

// OrderDirectory is the external collaborator owning order and part
// records. This core never caches part sets or statuses from it; it reads
// ids on demand and writes back derived lifecycle status. Unknown ids are
// reported as ObjectNotFoundError before any state change.
type OrderDirectory interface {
	// GetOrder retrieves an order's directory record.
	GetOrder(ctx context.Context, orderID kernel.UUID) (DirectoryOrder, error)

	// GetPartIDs retrieves the ids of all parts belonging to an order. The
	// part set is fixed when the order is sent to production.
	GetPartIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error)

	// UpdateLifecycleStatus writes the derived order status (e.g. "Cutting",
	// "Completed") back to the directory for display. The stored field is a
	// cache; the scan ledger stays the source of truth.
	UpdateLifecycleStatus(ctx context.Context, orderID kernel.UUID, status string) error
}
