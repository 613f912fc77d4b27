package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrPauseBatchCommandIsNotConstructed = errors.New(
	"PauseBatchCommand must be created via NewPauseBatchCommand constructor",
)

// PauseBatchCommand is a command to pause a Processing batch.
type PauseBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPauseBatchCommand creates a new PauseBatchCommand.
func NewPauseBatchCommand(batchID kernel.UUID) (PauseBatchCommand, error) {
	pauseCommand := PauseBatchCommand{guard: guard.NewConstructorGuard()}

	if err := pauseCommand.setBatchID(batchID); err != nil {
		return PauseBatchCommand{}, err
	}

	return pauseCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PauseBatchCommand) Validate() error {
	return c.guard.Validate(ErrPauseBatchCommandIsNotConstructed)
}

// BatchID returns the identifier of the batch to pause.
func (c PauseBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *PauseBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	c.batchID = batchID
	return nil
}
