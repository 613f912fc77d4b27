package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPartTrackQueryHandler reads a part's scan history straight from the
// ledger table. The part must exist in the directory; a part that exists but
// was never scanned yields an empty track, not an error.
type GetPartTrackQueryHandler struct {
	db *gorm.DB
}

// NewGetPartTrackQueryHandler creates a handler for part track queries.
func NewGetPartTrackQueryHandler(db *gorm.DB) GetPartTrackQueryHandler {
	return GetPartTrackQueryHandler{db: db}
}

// Handle executes the part track query. Scans come back oldest first; the
// last row names the current station.
func (h GetPartTrackQueryHandler) Handle(
	ctx context.Context,
	query GetPartTrackQuery,
) (GetPartTrackQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPartTrackQueryResponse{}, err
	}

	var orderIDRaw uuid.UUID
	err := h.db.WithContext(ctx).Raw(`
		SELECT order_id FROM parts WHERE id = ?
	`, query.PartID().Bytes()).Row().Scan(&orderIDRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPartTrackQueryResponse{}, errs.NewObjectNotFoundError("part", query.PartID().String())
	}
	if err != nil {
		return GetPartTrackQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(orderIDRaw[:])
	if err != nil {
		return GetPartTrackQueryResponse{}, err
	}

	response := GetPartTrackQueryResponse{
		PartID:  query.PartID(),
		OrderID: orderID,
		Scans:   make([]PartScanRecord, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			station,
			scanned_by,
			notes,
			occurred_at
		FROM scan_events
		WHERE part_id = ?
		ORDER BY occurred_at
	`, query.PartID().Bytes()).Rows()
	if err != nil {
		return GetPartTrackQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var record PartScanRecord
		var occurredAt time.Time

		if err = rows.Scan(&record.Station, &record.ScannedBy, &record.Notes, &occurredAt); err != nil {
			return GetPartTrackQueryResponse{}, err
		}
		record.OccurredAt = occurredAt.UTC()
		response.Scans = append(response.Scans, record)
	}

	if err = rows.Err(); err != nil {
		return GetPartTrackQueryResponse{}, err
	}

	if len(response.Scans) > 0 {
		response.CurrentStation = response.Scans[len(response.Scans)-1].Station
	}

	return response, nil
}
