// Package batchrepo persists batch aggregates. A batch spans two tables:
// the batches row carries lifecycle state, the batch_orders rows carry the
// member order snapshots fixed at creation.
package batchrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BatchDTO maps the batch lifecycle state to the batches table.
type BatchDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Status      int `gorm:"index"`
	CreatedAt   time.Time
	CompletedAt *time.Time

	Orders []BatchOrderDTO `gorm:"foreignKey:BatchID;references:ID"`
}

// TableName overrides GORM's default naming to use "batches".
func (BatchDTO) TableName() string {
	return "batches"
}

// BatchOrderDTO maps one member order snapshot to the batch_orders table.
// The snapshot fields are display data captured at batch creation; live
// status always comes from the ledger.
type BatchOrderDTO struct {
	BatchID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Number     string
	Customer   string
	PanelCount int
}

// TableName overrides GORM's default naming to use "batch_orders".
func (BatchOrderDTO) TableName() string {
	return "batch_orders"
}

func fromDomain(aggregate *batch.Batch) BatchDTO {
	snapshots := aggregate.Orders()
	orders := make([]BatchOrderDTO, len(snapshots))
	for i, snapshot := range snapshots {
		orders[i] = BatchOrderDTO{
			BatchID:    aggregate.ID().Bytes(),
			OrderID:    snapshot.OrderID().Bytes(),
			Number:     snapshot.Number(),
			Customer:   snapshot.Customer(),
			PanelCount: snapshot.PanelCount(),
		}
	}

	return BatchDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		CompletedAt: aggregate.CompletedAt(),
		Orders:      orders,
	}
}

func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	snapshots := make([]batch.OrderSnapshot, 0, len(dto.Orders))
	for _, orderDTO := range dto.Orders {
		orderID, orderErr := kernel.UUIDFromBytes(orderDTO.OrderID[:])
		if orderErr != nil {
			return nil, orderErr
		}

		snapshot, snapErr := batch.NewOrderSnapshot(orderID, orderDTO.Number, orderDTO.Customer, orderDTO.PanelCount)
		if snapErr != nil {
			return nil, snapErr
		}
		snapshots = append(snapshots, snapshot)
	}

	var completedAt *time.Time
	if dto.CompletedAt != nil {
		at := dto.CompletedAt.UTC()
		completedAt = &at
	}

	return batch.RestoreBatch(id, dto.Name, snapshots, batch.Status(dto.Status), dto.CreatedAt.UTC(), completedAt)
}
