package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/station"
	"shopfloor/internal/pkg/keymutex"
)

// StartBatchCommandHandler pushes a batch onto the pipeline. The status
// transition commits first; every member order is then advanced in its own
// transaction, so a failure while scanning order k of n leaves the batch
// Processing with orders 1..k-1 advanced and the failed ones reported
// individually for retry.
type StartBatchCommandHandler struct {
	uowFactory UoWFactory
	pipeline   station.Pipeline
	locks      *keymutex.KeyMutex
	appender   scanAppender
}

// NewStartBatchCommandHandler creates a handler for batch start operations.
func NewStartBatchCommandHandler(
	uowFactory UoWFactory,
	pipeline station.Pipeline,
	locks *keymutex.KeyMutex,
) StartBatchCommandHandler {
	return StartBatchCommandHandler{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		locks:      locks,
		appender:   newScanAppender(),
	}
}

// Handle processes the batch start command. Starting is idempotent at the
// part level: only parts with no prior scans receive the initial
// first-station scan, so resuming a Paused batch or retrying after a
// partial failure never regresses parts that already advanced.
func (h StartBatchCommandHandler) Handle(ctx context.Context, cmd StartBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	startedBatch, err := h.transitionToProcessing(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	var failures []OrderStartFailure
	for _, snapshot := range startedBatch.Orders() {
		if orderErr := h.startOrder(ctx, snapshot.OrderID(), cmd.StartedBy()); orderErr != nil {
			failures = append(failures, OrderStartFailure{OrderID: snapshot.OrderID(), Cause: orderErr})
		}
	}

	if len(failures) > 0 {
		return &PartialBatchStartError{BatchID: cmd.BatchID(), Failures: failures}
	}

	return nil
}

// transitionToProcessing commits the Pending|Paused -> Processing transition
// on its own so later per-order scan failures cannot roll it back.
func (h StartBatchCommandHandler) transitionToProcessing(
	ctx context.Context,
	batchID kernel.UUID,
) (*batch.Batch, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	aggregate, err := batchRepo.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if err = aggregate.Start(); err != nil {
		return nil, err
	}

	if err = batchRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// startOrder scans every not-yet-started part of the order onto the first
// station and refreshes the order's directory lifecycle status, all in one
// transaction per order.
func (h StartBatchCommandHandler) startOrder(ctx context.Context, orderID kernel.UUID, startedBy string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.ScanEventRepository()
	directory := uow.OrderDirectory()

	partIDs, err := directory.GetPartIDs(ctx, orderID)
	if err != nil {
		return err
	}

	// Directory part order is stable, so concurrent starts acquire locks in
	// the same sequence. Locks are taken before the latest-event read: a
	// scan committed while the batch starts must be visible when the
	// unstarted set is computed, or the part would get a second
	// first-station event.
	for _, partID := range partIDs {
		h.locks.Lock(partID.String())
		defer h.locks.Unlock(partID.String())
	}

	latestByPart, err := ledger.GetLatestForParts(ctx, partIDs)
	if err != nil {
		return err
	}

	unstarted := make([]kernel.UUID, 0, len(partIDs))
	for _, partID := range partIDs {
		if _, scanned := latestByPart[partID.String()]; !scanned {
			unstarted = append(unstarted, partID)
		}
	}

	first := h.pipeline.First()
	for _, partID := range unstarted {
		if _, err = h.appender.append(ctx, ledger, partID, orderID, first, startedBy, ""); err != nil {
			return err
		}
	}

	if err = directory.UpdateLifecycleStatus(ctx, orderID, first.StatusName()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
