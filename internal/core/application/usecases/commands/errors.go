package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
)

// ErrOrderAlreadyBatched is returned per order when a batch-create candidate
// already belongs to an active (non-Completed) batch. It never aborts a
// multi-order batch creation on its own; only if every candidate is rejected
// does the creation fail (with batch.ErrEmptyBatch).
var ErrOrderAlreadyBatched = errors.New("order already belongs to an active batch")

// OrderStartFailure records why one member order could not be pushed onto
// the first station during batch start.
type OrderStartFailure struct {
	OrderID kernel.UUID
	Cause   error
}

// PartialBatchStartError reports that one or more member orders failed to
// receive their initial scans during batch start. The batch itself stays
// Processing; orders before the failure are advanced, the listed ones are
// not. The caller may retry just the failed orders.
type PartialBatchStartError struct {
	BatchID  kernel.UUID
	Failures []OrderStartFailure
}

func (e *PartialBatchStartError) Error() string {
	return fmt.Sprintf("batch %s: %d order(s) failed to start", e.BatchID, len(e.Failures))
}

// FailedOrderIDs returns the ids of the orders that did not start.
func (e *PartialBatchStartError) FailedOrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(e.Failures))
	for i, failure := range e.Failures {
		ids[i] = failure.OrderID
	}
	return ids
}
