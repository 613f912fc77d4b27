package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

// CompleteBatchCommand is a command to mark a batch Completed regardless of
// how far its orders have progressed.
type CompleteBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteBatchCommand creates a new CompleteBatchCommand.
func NewCompleteBatchCommand(batchID kernel.UUID) (CompleteBatchCommand, error) {
	completeCommand := CompleteBatchCommand{guard: guard.NewConstructorGuard()}

	if err := completeCommand.setBatchID(batchID); err != nil {
		return CompleteBatchCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

// BatchID returns the identifier of the batch to complete.
func (c CompleteBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *CompleteBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	c.batchID = batchID
	return nil
}
