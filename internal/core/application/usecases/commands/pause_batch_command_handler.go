package commands

import (
	"context"
)

// PauseBatchCommandHandler suspends a Processing batch. Pausing only flips
// the lifecycle status; already-appended scans stay in the ledger and parts
// keep their positions.
type PauseBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewPauseBatchCommandHandler creates a handler for batch pause operations.
func NewPauseBatchCommandHandler(uowFactory BatchUoWFactory) PauseBatchCommandHandler {
	return PauseBatchCommandHandler{uowFactory: uowFactory}
}

// Handle processes the batch pause command.
func (h PauseBatchCommandHandler) Handle(ctx context.Context, cmd PauseBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	aggregate, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	if err = aggregate.Pause(); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
