// Package queries contains read-only operations over the production
// tracking data. Query handlers read through SQL directly instead of going
// through the aggregates; the scan ledger and batch tables are the source of
// truth and the handlers never mutate them.
package queries

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrGetPartTrackQueryIsNotConstructed = errors.New(
		"GetPartTrackQuery must be created via NewGetPartTrackQuery constructor",
	)
)

// GetPartTrackQuery retrieves the full scan history of one part, oldest
// first, plus its current station.
//
// Example:
//
//	query, err := NewGetPartTrackQuery(partID)
//	if err != nil {
//	    return err
//	}
//
//	track, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get part track: %w", err)
//	}
//
//	fmt.Printf("Part %s is at %s after %d scans\n",
//	    track.PartID, track.CurrentStation, len(track.Scans))
type GetPartTrackQuery struct {
	partID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPartTrackQuery creates a query for one part's scan history.
func NewGetPartTrackQuery(partID kernel.UUID) (GetPartTrackQuery, error) {
	if err := partID.Validate(); err != nil {
		return GetPartTrackQuery{}, err
	}

	return GetPartTrackQuery{
		partID: partID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPartTrackQuery) Validate() error {
	return q.guard.Validate(ErrGetPartTrackQueryIsNotConstructed)
}

// PartID returns the part whose track is requested.
func (q GetPartTrackQuery) PartID() kernel.UUID {
	return q.partID
}

// PartScanRecord is one row of a part's track: where it was scanned, by
// whom, and when. Rework shows up as a station with a lower pipeline
// position than an earlier row.
type PartScanRecord struct {
	Station    string
	ScannedBy  string
	Notes      string
	OccurredAt time.Time
}

// GetPartTrackQueryResponse is a part's complete movement record. For a part
// that exists but has never been scanned, CurrentStation is empty and Scans
// has no rows.
type GetPartTrackQueryResponse struct {
	PartID         kernel.UUID
	OrderID        kernel.UUID
	CurrentStation string
	Scans          []PartScanRecord
}
