package queries

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrGetBatchBoardQueryIsNotConstructed = errors.New(
		"GetBatchBoardQuery must be created via NewGetBatchBoardQuery constructor",
	)
)

// GetBatchBoardQuery retrieves every batch with its member orders and live
// progress, for the shop floor overview board.
type GetBatchBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBatchBoardQuery creates a parameterless query for the batch board.
func NewGetBatchBoardQuery() GetBatchBoardQuery {
	return GetBatchBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetBatchBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchBoardQueryIsNotConstructed)
}

// BatchBoardOrder is one member order on the board: the snapshot captured at
// batch creation plus the order's status recomputed from the ledger.
type BatchBoardOrder struct {
	OrderID    kernel.UUID
	Number     string
	Customer   string
	PanelCount int
	Status     string
}

// BatchBoardRow is one batch on the board. Progress is the share of member
// orders whose recomputed status is the completed one, in percent.
type BatchBoardRow struct {
	BatchID     kernel.UUID
	Name        string
	Status      string
	Progress    float64
	CreatedAt   time.Time
	CompletedAt *time.Time
	Orders      []BatchBoardOrder
}
