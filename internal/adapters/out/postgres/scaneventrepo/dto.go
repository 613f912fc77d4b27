// Package scaneventrepo persists the part tracking ledger. The table is
// append-only: rows are inserted by scans and batch starts and never updated
// or deleted afterwards.
package scaneventrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/scan"

	"github.com/google/uuid"
)

// ScanEventDTO maps scan events to the scan_events table. The composite
// index on (part_id, occurred_at) serves the latest-event and history
// lookups.
type ScanEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartID     uuid.UUID `gorm:"type:uuid;index:idx_scan_events_part_occurred,priority:1"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Station    string
	ScannedBy  string
	Notes      string
	OccurredAt time.Time `gorm:"index:idx_scan_events_part_occurred,priority:2"`
}

// TableName overrides GORM's default naming to use "scan_events".
func (ScanEventDTO) TableName() string {
	return "scan_events"
}

func fromDomain(event *scan.Event) ScanEventDTO {
	return ScanEventDTO{
		ID:         event.ID().Bytes(),
		PartID:     event.PartID().Bytes(),
		OrderID:    event.OrderID().Bytes(),
		Station:    event.Station(),
		ScannedBy:  event.ScannedBy(),
		Notes:      event.Notes(),
		OccurredAt: event.OccurredAt(),
	}
}

func toDomain(dto ScanEventDTO) (*scan.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	partID, err := kernel.UUIDFromBytes(dto.PartID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return scan.RestoreEvent(id, partID, orderID, dto.Station, dto.ScannedBy, dto.Notes, dto.OccurredAt.UTC())
}
