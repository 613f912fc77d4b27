package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrStartBatchCommandIsNotConstructed = errors.New(
		"StartBatchCommand must be created via NewStartBatchCommand constructor",
	)
)

// StartBatchCommand represents a request to push a batch onto the pipeline:
// the batch transitions to Processing and every part of every member order
// is scanned onto the first station.
type StartBatchCommand struct { //nolint:recvcheck //using for validation
	batchID   kernel.UUID
	startedBy string

	guard guard.ConstructorGuard
}

// NewStartBatchCommand creates a command to start (or resume) a batch.
// startedBy is the operator recorded on the initial scan events.
func NewStartBatchCommand(batchID kernel.UUID, startedBy string) (StartBatchCommand, error) {
	startCommand := StartBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		startCommand.setBatchID(batchID),
		startCommand.setStartedBy(startedBy),
	); err != nil {
		return StartBatchCommand{}, err
	}

	return startCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c StartBatchCommand) Validate() error {
	return c.guard.Validate(ErrStartBatchCommandIsNotConstructed)
}

// BatchID returns the identifier of the batch to start.
func (c StartBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// StartedBy returns the operator starting the batch.
func (c StartBatchCommand) StartedBy() string {
	return c.startedBy
}

func (c *StartBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	c.batchID = batchID
	return nil
}

func (c *StartBatchCommand) setStartedBy(startedBy string) error {
	if startedBy == "" {
		return errs.NewValueIsRequiredError("startedBy")
	}
	c.startedBy = startedBy
	return nil
}
