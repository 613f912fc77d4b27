package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrCheckBatchCompletionCommandIsNotConstructed = errors.New(
	"CheckBatchCompletionCommand must be created via one of its constructors",
)

// CheckBatchCompletionCommand is a command to recompute progress for
// Processing batches and complete the ones whose orders have all finished.
// The unscoped form sweeps every Processing batch; the scoped form checks a
// single batch.
type CheckBatchCompletionCommand struct { //nolint:recvcheck //using for validation
	batchID       kernel.UUID
	scopedToBatch bool

	guard guard.ConstructorGuard
}

// NewCheckBatchCompletionCommand creates a command that sweeps all
// Processing batches.
func NewCheckBatchCompletionCommand() CheckBatchCompletionCommand {
	return CheckBatchCompletionCommand{guard: guard.NewConstructorGuard()}
}

// NewCheckBatchCompletionCommandForBatch creates a command scoped to a
// single batch.
func NewCheckBatchCompletionCommandForBatch(batchID kernel.UUID) (CheckBatchCompletionCommand, error) {
	checkCommand := CheckBatchCompletionCommand{guard: guard.NewConstructorGuard()}

	if err := checkCommand.setBatchID(batchID); err != nil {
		return CheckBatchCompletionCommand{}, err
	}

	return checkCommand, nil
}

// Validate ensures the command was created through a constructor.
func (c CheckBatchCompletionCommand) Validate() error {
	return c.guard.Validate(ErrCheckBatchCompletionCommandIsNotConstructed)
}

// BatchID returns the scoped batch identifier. Only meaningful when
// IsScopedToBatch reports true.
func (c CheckBatchCompletionCommand) BatchID() kernel.UUID {
	return c.batchID
}

// IsScopedToBatch reports whether the command targets a single batch rather
// than sweeping all Processing ones.
func (c CheckBatchCompletionCommand) IsScopedToBatch() bool {
	return c.scopedToBatch
}

func (c *CheckBatchCompletionCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	c.batchID = batchID
	c.scopedToBatch = true
	return nil
}
