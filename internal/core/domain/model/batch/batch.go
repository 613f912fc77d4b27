package batch

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch instance was not
	// created through NewBatch or RestoreBatch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch or RestoreBatch constructor")

	// ErrEmptyBatch is returned when a batch would contain no orders. No
	// partial batch is ever created.
	ErrEmptyBatch = errors.New("batch must contain at least one order")
)

// OrderSnapshot captures an order's display fields at batch creation time.
// It is intentionally a snapshot and not a live reference: number, customer,
// and panel count may change in the directory afterwards without affecting
// what the batch screen shows for the run. Status and progress are never
// snapshotted; they are always recomputed live from the scan ledger.
type OrderSnapshot struct {
	orderID    kernel.UUID
	number     string
	customer   string
	panelCount int
}

// NewOrderSnapshot creates a snapshot of an order for inclusion in a batch.
func NewOrderSnapshot(orderID kernel.UUID, number, customer string, panelCount int) (OrderSnapshot, error) {
	if err := orderID.Validate(); err != nil {
		return OrderSnapshot{}, err
	}
	if panelCount < 0 {
		return OrderSnapshot{}, errs.NewValueIsInvalidError("panelCount")
	}

	return OrderSnapshot{
		orderID:    orderID,
		number:     number,
		customer:   customer,
		panelCount: panelCount,
	}, nil
}

// OrderID returns the snapshotted order's identifier.
func (s OrderSnapshot) OrderID() kernel.UUID {
	return s.orderID
}

// Number returns the order number as of batch creation.
func (s OrderSnapshot) Number() string {
	return s.number
}

// Customer returns the customer name as of batch creation.
func (s OrderSnapshot) Customer() string {
	return s.customer
}

// PanelCount returns the order's panel count as of batch creation.
func (s OrderSnapshot) PanelCount() int {
	return s.panelCount
}

// Batch is the aggregate root for a multi-order production run. It holds an
// ordered list of order snapshots fixed at creation and a lifecycle status;
// progress is never stored on the batch, it is recomputed from order status
// on every read.
//
// Invariants:
//   - Must contain at least one order
//   - The order list never changes after creation
//   - completedAt is stamped at most once (first writer wins)
//   - Can only be created through NewBatch or RestoreBatch
type Batch struct {
	id          kernel.UUID
	name        string
	orders      []OrderSnapshot
	status      Status
	createdAt   time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewBatch creates a batch in Pending status from the given order
// snapshots. Fails with ErrEmptyBatch for an empty snapshot list.
func NewBatch(id kernel.UUID, name string, orders []OrderSnapshot, createdAt time.Time) (*Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrEmptyBatch
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	snapshots := make([]OrderSnapshot, len(orders))
	copy(snapshots, orders)

	return &Batch{
		id:            id,
		name:          name,
		orders:        snapshots,
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreBatch reconstructs a batch from persistence.
func RestoreBatch(
	id kernel.UUID,
	name string,
	orders []OrderSnapshot,
	status Status,
	createdAt time.Time,
	completedAt *time.Time,
) (*Batch, error) {
	restored, err := NewBatch(id, name, orders, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	restored.status = status
	restored.completedAt = completedAt
	return restored, nil
}

// Validate ensures the batch was created through a constructor.
func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

// IsEqual compares two batches by identifier.
func (b *Batch) IsEqual(other *Batch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// Name returns the operator-supplied batch name; may be empty.
func (b *Batch) Name() string {
	return b.name
}

// Orders returns the snapshot list in batch order. The slice is a copy.
func (b *Batch) Orders() []OrderSnapshot {
	out := make([]OrderSnapshot, len(b.orders))
	copy(out, b.orders)
	return out
}

// OrderIDs returns the member order identifiers in batch order.
func (b *Batch) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(b.orders))
	for i, snapshot := range b.orders {
		ids[i] = snapshot.OrderID()
	}
	return ids
}

// Status returns the current lifecycle status.
func (b *Batch) Status() Status {
	return b.status
}

// CreatedAt returns the batch creation time.
func (b *Batch) CreatedAt() time.Time {
	return b.createdAt
}

// CompletedAt returns the completion stamp, nil while the batch is not
// Completed.
func (b *Batch) CompletedAt() *time.Time {
	return b.completedAt
}

// IsActive reports whether the batch still claims its member orders. Only
// Completed batches release their orders for inclusion in a new batch.
func (b *Batch) IsActive() bool {
	return !b.status.IsFinal()
}

// Start moves the batch onto the pipeline: Pending or Paused -> Processing.
func (b *Batch) Start() error {
	newStatus, err := b.status.Start()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Pause suspends a Processing batch. Pausing never affects already-recorded
// scans; it is a control state only.
func (b *Batch) Pause() error {
	newStatus, err := b.status.Pause()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Complete marks the batch Completed and stamps completedAt if it has not
// been stamped yet. Completing an already-Completed batch is a no-op, which
// keeps the periodic completion poll and manual overrides idempotent.
func (b *Batch) Complete(at time.Time) error {
	newStatus, err := b.status.Complete()
	if err != nil {
		return err
	}

	b.status = newStatus
	if b.completedAt == nil {
		stamp := at
		b.completedAt = &stamp
	}
	return nil
}
