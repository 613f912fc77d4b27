package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrDeleteBatchCommandIsNotConstructed = errors.New(
	"DeleteBatchCommand must be created via NewDeleteBatchCommand constructor",
)

// DeleteBatchCommand is a command to remove a batch. Deleting releases the
// batch's orders for re-batching; ledger history is untouched.
type DeleteBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteBatchCommand creates a new DeleteBatchCommand.
func NewDeleteBatchCommand(batchID kernel.UUID) (DeleteBatchCommand, error) {
	deleteCommand := DeleteBatchCommand{guard: guard.NewConstructorGuard()}

	if err := deleteCommand.setBatchID(batchID); err != nil {
		return DeleteBatchCommand{}, err
	}

	return deleteCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrDeleteBatchCommandIsNotConstructed)
}

// BatchID returns the identifier of the batch to delete.
func (c DeleteBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *DeleteBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	c.batchID = batchID
	return nil
}
