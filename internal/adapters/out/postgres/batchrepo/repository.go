package batchrepo

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM.
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GORM batch repository.
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// Add saves a new batch with its order snapshots.
func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves lifecycle changes to an existing batch. Only the batches row
// is touched; the snapshot rows are immutable after creation. completed_at
// is first-writer-wins at the column level: the manual complete handler and
// the completion sweep can both load the batch before either commits, and
// the stamp of whichever commits first must survive.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BatchDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "completed_at").
		Updates(map[string]any{
			"status":       dto.Status,
			"completed_at": gorm.Expr("COALESCE(completed_at, ?)", dto.CompletedAt),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("batch", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a batch with its order snapshots.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	err := r.db.WithContext(ctx).Preload("Orders").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a batch and its snapshot rows.
func (r *GormBatchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&BatchOrderDTO{}, "batch_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&BatchDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("batch", id.String())
	}

	return nil
}

// GetAllInStatus retrieves all batches in the given status with their
// snapshots.
func (r *GormBatchRepository) GetAllInStatus(ctx context.Context, status batch.Status) ([]*batch.Batch, error) {
	var dtos []BatchDTO
	err := r.db.WithContext(ctx).Preload("Orders").
		Find(&dtos, "status = ?", int(status)).Error
	if err != nil {
		return nil, err
	}

	batches := make([]*batch.Batch, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		batches = append(batches, aggregate)
	}

	return batches, nil
}

// GetActiveBatchOrderIDs returns order id -> owning batch id for every
// non-Completed batch.
func (r *GormBatchRepository) GetActiveBatchOrderIDs(ctx context.Context) (map[string]kernel.UUID, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT bo.order_id, bo.batch_id
		FROM batch_orders bo
		JOIN batches b ON b.id = bo.batch_id
		WHERE b.status != ?
	`, int(batch.Completed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claimed := make(map[string]kernel.UUID)
	for rows.Next() {
		var orderIDRaw, batchIDRaw uuid.UUID
		if err = rows.Scan(&orderIDRaw, &batchIDRaw); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(orderIDRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		batchID, idErr := kernel.UUIDFromBytes(batchIDRaw[:])
		if idErr != nil {
			return nil, idErr
		}

		claimed[orderID.String()] = batchID
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return claimed, nil
}
