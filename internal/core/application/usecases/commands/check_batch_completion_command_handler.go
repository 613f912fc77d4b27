package commands

import (
	"context"
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"
)

// BatchCompletionResult reports the progress computed for one batch during a
// completion check.
type BatchCompletionResult struct {
	BatchID         string
	TotalOrders     int
	CompletedOrders int
	Progress        float64
	Completed       bool
}

// CheckBatchCompletionCommandHandler recomputes batch progress from the
// ledger and completes batches whose orders have all reached the terminal
// station. The check is idempotent: running it twice over the same ledger
// state changes nothing the second time, and the completion timestamp keeps
// the value stamped by whichever run completed the batch first.
type CheckBatchCompletionCommandHandler struct {
	uowFactory UoWFactory
	aggregator services.OrderStatusAggregator
	now        func() time.Time
}

// NewCheckBatchCompletionCommandHandler creates a handler for batch
// completion checks.
func NewCheckBatchCompletionCommandHandler(
	uowFactory UoWFactory,
	aggregator services.OrderStatusAggregator,
) CheckBatchCompletionCommandHandler {
	return CheckBatchCompletionCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the completion check and returns one result per batch
// examined. Orders missing from the directory count as not completed rather
// than failing the sweep; a batch with such an order simply stays
// Processing until the discrepancy is resolved.
func (h CheckBatchCompletionCommandHandler) Handle(
	ctx context.Context,
	cmd CheckBatchCompletionCommand,
) ([]BatchCompletionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batches, err := h.batchesToCheck(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	results := make([]BatchCompletionResult, 0, len(batches))
	for _, aggregate := range batches {
		result, resultErr := h.checkBatch(ctx, uow, aggregate)
		if resultErr != nil {
			return nil, resultErr
		}
		results = append(results, result)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return results, nil
}

func (h CheckBatchCompletionCommandHandler) batchesToCheck(
	ctx context.Context,
	uow UoW,
	cmd CheckBatchCompletionCommand,
) ([]*batch.Batch, error) {
	batchRepo := uow.BatchRepository()

	if cmd.IsScopedToBatch() {
		aggregate, err := batchRepo.Get(ctx, cmd.BatchID())
		if err != nil {
			return nil, err
		}
		if aggregate.Status() != batch.Processing {
			return nil, nil
		}
		return []*batch.Batch{aggregate}, nil
	}

	return batchRepo.GetAllInStatus(ctx, batch.Processing)
}

func (h CheckBatchCompletionCommandHandler) checkBatch(
	ctx context.Context,
	uow UoW,
	aggregate *batch.Batch,
) (BatchCompletionResult, error) {
	total := len(aggregate.Orders())
	completed := 0

	for _, snapshot := range aggregate.Orders() {
		done, err := h.isOrderCompleted(ctx, uow, snapshot)
		if err != nil {
			return BatchCompletionResult{}, err
		}
		if done {
			completed++
		}
	}

	result := BatchCompletionResult{
		BatchID:         aggregate.ID().String(),
		TotalOrders:     total,
		CompletedOrders: completed,
		Progress:        float64(completed) / float64(total) * 100,
		Completed:       completed == total,
	}

	if result.Completed {
		if err := aggregate.Complete(h.now()); err != nil {
			return BatchCompletionResult{}, err
		}
		if err := uow.BatchRepository().Update(ctx, aggregate); err != nil {
			return BatchCompletionResult{}, err
		}
	}

	return result, nil
}

func (h CheckBatchCompletionCommandHandler) isOrderCompleted(
	ctx context.Context,
	uow UoW,
	snapshot batch.OrderSnapshot,
) (bool, error) {
	partIDs, err := uow.OrderDirectory().GetPartIDs(ctx, snapshot.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	latestByPart, err := uow.ScanEventRepository().GetLatestForParts(ctx, partIDs)
	if err != nil {
		return false, err
	}

	stationNames := make([]string, len(partIDs))
	for i, partID := range partIDs {
		if event, ok := latestByPart[partID.String()]; ok {
			stationNames[i] = event.Station()
		}
	}

	status, err := h.aggregator.AggregateStationNames(stationNames)
	if err != nil {
		return false, err
	}

	return status.Completed, nil
}
