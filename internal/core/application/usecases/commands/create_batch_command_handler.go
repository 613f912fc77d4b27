package commands

import (
	"context"
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// RejectedOrder records why one candidate order was excluded from a new
// batch.
type RejectedOrder struct {
	OrderID kernel.UUID
	Cause   error
}

// CreateBatchResult reports which candidates made it into the batch and
// which were rejected (unknown order, or already claimed by an active
// batch).
type CreateBatchResult struct {
	BatchID  kernel.UUID
	Accepted []kernel.UUID
	Rejected []RejectedOrder
}

// CreateBatchCommandHandler creates batches from pending-order candidates.
// Candidates are validated per order: a rejected candidate never aborts the
// whole creation unless every candidate is rejected, in which case the
// creation fails with batch.ErrEmptyBatch and nothing is persisted.
type CreateBatchCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateBatchCommandHandler creates a handler for batch creation.
func NewCreateBatchCommandHandler(uowFactory UoWFactory) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch creation command. Order snapshots (number,
// customer, panel count) are captured at this moment for display; status and
// progress are always recomputed live from the ledger afterwards.
func (h CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) (CreateBatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateBatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateBatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	directory := uow.OrderDirectory()

	activeOrders, err := batchRepo.GetActiveBatchOrderIDs(ctx)
	if err != nil {
		return CreateBatchResult{}, err
	}

	result := CreateBatchResult{BatchID: cmd.BatchID()}
	snapshots := make([]batch.OrderSnapshot, 0, len(cmd.OrderIDs()))
	seen := make(map[string]bool)

	for _, orderID := range cmd.OrderIDs() {
		if seen[orderID.String()] {
			continue
		}
		seen[orderID.String()] = true

		if _, claimed := activeOrders[orderID.String()]; claimed {
			result.Rejected = append(result.Rejected, RejectedOrder{OrderID: orderID, Cause: ErrOrderAlreadyBatched})
			continue
		}

		directoryOrder, dirErr := directory.GetOrder(ctx, orderID)
		if errors.Is(dirErr, errs.ErrObjectNotFound) {
			result.Rejected = append(result.Rejected, RejectedOrder{OrderID: orderID, Cause: dirErr})
			continue
		}
		if dirErr != nil {
			return CreateBatchResult{}, dirErr
		}

		snapshot, snapErr := batch.NewOrderSnapshot(
			directoryOrder.ID,
			directoryOrder.Number,
			directoryOrder.Customer,
			directoryOrder.PanelCount,
		)
		if snapErr != nil {
			return CreateBatchResult{}, snapErr
		}

		snapshots = append(snapshots, snapshot)
		result.Accepted = append(result.Accepted, orderID)
	}

	if len(snapshots) == 0 {
		return CreateBatchResult{}, batch.ErrEmptyBatch
	}

	newBatch, err := batch.NewBatch(cmd.BatchID(), cmd.Name(), snapshots, time.Now().UTC())
	if err != nil {
		return CreateBatchResult{}, err
	}

	if err = batchRepo.Add(ctx, newBatch); err != nil {
		return CreateBatchResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateBatchResult{}, err
	}

	return result, nil
}
