package scaneventrepo

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/scan"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormScanEventRepository implements ScanEventRepository using GORM.
type GormScanEventRepository struct {
	db *gorm.DB
}

// NewGormScanEventRepository creates a new GORM ledger repository.
func NewGormScanEventRepository(db *gorm.DB) *GormScanEventRepository {
	return &GormScanEventRepository{db: db}
}

// Add appends a scan event to the ledger.
func (r *GormScanEventRepository) Add(ctx context.Context, event *scan.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLatestForPart retrieves the most recent event for a part.
func (r *GormScanEventRepository) GetLatestForPart(ctx context.Context, partID kernel.UUID) (*scan.Event, error) {
	if err := partID.Validate(); err != nil {
		return nil, err
	}

	var dto ScanEventDTO
	err := r.db.WithContext(ctx).
		Where("part_id = ?", partID.Bytes()).
		Order("occurred_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("scan event for part", partID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatestForParts retrieves the most recent event per part in one query.
// Parts with no events are simply absent from the returned map.
func (r *GormScanEventRepository) GetLatestForParts(
	ctx context.Context,
	partIDs []kernel.UUID,
) (map[string]*scan.Event, error) {
	latest := make(map[string]*scan.Event, len(partIDs))
	if len(partIDs) == 0 {
		return latest, nil
	}

	ids := make([]any, len(partIDs))
	for i, partID := range partIDs {
		if err := partID.Validate(); err != nil {
			return nil, err
		}
		ids[i] = partID.Bytes()
	}

	var dtos []ScanEventDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (part_id)
			id,
			part_id,
			order_id,
			station,
			scanned_by,
			notes,
			occurred_at
		FROM scan_events
		WHERE part_id IN ?
		ORDER BY part_id, occurred_at DESC
	`, ids).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		event, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		latest[event.PartID().String()] = event
	}

	return latest, nil
}

// GetHistoryForPart retrieves a part's full scan history, oldest first.
func (r *GormScanEventRepository) GetHistoryForPart(
	ctx context.Context,
	partID kernel.UUID,
) ([]*scan.Event, error) {
	if err := partID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ScanEventDTO
	err := r.db.WithContext(ctx).
		Where("part_id = ?", partID.Bytes()).
		Order("occurred_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*scan.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		events = append(events, event)
	}

	return events, nil
}
