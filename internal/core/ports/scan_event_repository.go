package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/scan"
)

// ScanEventRepository defines the persistence contract for the append-only
// part tracking ledger. Events are only ever added, never updated or
// removed; the ledger is the audit trail for everything that happened on
// the shop floor.
type ScanEventRepository interface {
	// Add appends a new scan event to the ledger.
	Add(ctx context.Context, event *scan.Event) error

	// GetLatestForPart retrieves the most recent event for a part, the one
	// that defines its current station. Returns an ObjectNotFoundError when
	// the part has never been scanned.
	GetLatestForPart(ctx context.Context, partID kernel.UUID) (*scan.Event, error)

	// GetLatestForParts retrieves the most recent event per part for a set
	// of parts in one round trip. Parts with no events are absent from the
	// returned map; the map is keyed by part id string.
	GetLatestForParts(ctx context.Context, partIDs []kernel.UUID) (map[string]*scan.Event, error)

	// GetHistoryForPart retrieves a part's full scan history, oldest first.
	GetHistoryForPart(ctx context.Context, partID kernel.UUID) ([]*scan.Event, error)
}
