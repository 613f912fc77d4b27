package commands

import (
	"context"
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/scan"
	"shopfloor/internal/core/domain/model/station"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// scanAppender owns the per-part monotonic clock rule: every appended event
// carries a timestamp strictly greater than the part's latest one, bumped by
// the smallest unit when the wall clock has not advanced. It is shared by
// the record-scan and start-batch handlers so both paths append through the
// same discipline.
//
// Callers must hold the part's keymutex from before the latest-read until
// their transaction commits; the appender itself does not lock.
type scanAppender struct {
	now func() time.Time
}

func newScanAppender() scanAppender {
	return scanAppender{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// append records one scan event for a part at a station through the ledger
// repository bound to the caller's transaction.
func (a scanAppender) append(
	ctx context.Context,
	ledger ports.ScanEventRepository,
	partID kernel.UUID,
	orderID kernel.UUID,
	st station.Station,
	scannedBy string,
	notes string,
) (*scan.Event, error) {
	occurredAt := a.now()
	latest, err := ledger.GetLatestForPart(ctx, partID)
	switch {
	case err == nil:
		if !occurredAt.After(latest.OccurredAt()) {
			occurredAt = latest.OccurredAt().Add(time.Microsecond)
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// First scan for this part.
	default:
		return nil, err
	}

	event, err := scan.NewEvent(kernel.NewUUID(), partID, orderID, st.Name(), scannedBy, notes, occurredAt)
	if err != nil {
		return nil, err
	}

	if err = ledger.Add(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}
