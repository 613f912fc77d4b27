package directoryrepo

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderDirectory implements ports.OrderDirectory over the shared orders
// and parts tables.
type GormOrderDirectory struct {
	db *gorm.DB
}

// NewGormOrderDirectory creates a new GORM directory adapter.
func NewGormOrderDirectory(db *gorm.DB) *GormOrderDirectory {
	return &GormOrderDirectory{db: db}
}

// GetOrder retrieves an order's directory record.
func (r *GormOrderDirectory) GetOrder(ctx context.Context, orderID kernel.UUID) (ports.DirectoryOrder, error) {
	if err := orderID.Validate(); err != nil {
		return ports.DirectoryOrder{}, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DirectoryOrder{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return ports.DirectoryOrder{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.DirectoryOrder{}, err
	}

	return ports.DirectoryOrder{
		ID:              id,
		Number:          dto.Number,
		Customer:        dto.Customer,
		PanelCount:      dto.PanelCount,
		LifecycleStatus: dto.Status,
	}, nil
}

// GetPartIDs retrieves the ids of all parts belonging to an order, sorted
// for a stable lock acquisition order. Fails with an ObjectNotFoundError
// when the order does not exist.
func (r *GormOrderDirectory) GetPartIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	if _, err := r.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	var dtos []PartDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	partIDs := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		partID, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		partIDs = append(partIDs, partID)
	}

	return partIDs, nil
}

// UpdateLifecycleStatus writes the derived order status back to the orders
// table.
func (r *GormOrderDirectory) UpdateLifecycleStatus(ctx context.Context, orderID kernel.UUID, status string) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", orderID.Bytes()).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}

	return nil
}
