package commands

import (
	"context"
	"time"
)

// CompleteBatchCommandHandler force-completes a batch. The completion
// timestamp is stamped only on the first transition to Completed, so a
// repeat of the command cannot move it.
type CompleteBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	now        func() time.Time
}

// NewCompleteBatchCommandHandler creates a handler for manual batch
// completion.
func NewCompleteBatchCommandHandler(uowFactory BatchUoWFactory) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the batch complete command.
func (h CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) error {
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

	if err = aggregate.Complete(h.now()); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
