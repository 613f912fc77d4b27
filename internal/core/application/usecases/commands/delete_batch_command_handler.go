package commands

import (
	"context"
)

// DeleteBatchCommandHandler removes a batch record.
type DeleteBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewDeleteBatchCommandHandler creates a handler for batch deletion.
func NewDeleteBatchCommandHandler(uowFactory BatchUoWFactory) DeleteBatchCommandHandler {
	return DeleteBatchCommandHandler{uowFactory: uowFactory}
}

// Handle processes the batch delete command.
func (h DeleteBatchCommandHandler) Handle(ctx context.Context, cmd DeleteBatchCommand) error {
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

	if err := uow.BatchRepository().Delete(ctx, cmd.BatchID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
