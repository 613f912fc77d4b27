package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrCreateBatchCommandIsNotConstructed = errors.New(
		"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
	)
)

// CreateBatchCommand represents a request to group pending orders into a
// production batch. The order list is fixed at creation; candidates that are
// unknown or already claimed by an active batch are rejected individually by
// the handler.
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID  kernel.UUID
	name     string
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand creates a command to register a new batch. Fails
// with batch.ErrEmptyBatch when no order ids are supplied; no partial batch
// is ever created.
func NewCreateBatchCommand(batchID kernel.UUID, name string, orderIDs []kernel.UUID) (CreateBatchCommand, error) {
	batchCommand := CreateBatchCommand{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		batchCommand.setBatchID(batchID),
		batchCommand.setOrderIDs(orderIDs),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return batchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

// BatchID returns the identifier for the batch to create.
func (c CreateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// Name returns the operator-supplied batch name; may be empty.
func (c CreateBatchCommand) Name() string {
	return c.name
}

// OrderIDs returns the candidate order identifiers in request order.
func (c CreateBatchCommand) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.orderIDs))
	copy(out, c.orderIDs)
	return out
}

func (c *CreateBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	c.batchID = batchID
	return nil
}

func (c *CreateBatchCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return batch.ErrEmptyBatch
	}
	for _, orderID := range orderIDs {
		if err := orderID.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}
