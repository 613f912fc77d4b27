package queries

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrGetOrderStatusQueryIsNotConstructed = errors.New(
		"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
	)
)

// GetOrderStatusQuery derives an order's current status from the latest scan
// of each of its parts. The status is recomputed from the ledger on every
// call; the lifecycle column on the orders table is only a display cache.
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for one order's derived status.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return GetOrderStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the order whose status is requested.
func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PartPosition reports where one part of the order currently sits. Station
// is empty and LastScanAt zero for a part that has never been scanned.
type PartPosition struct {
	PartID     kernel.UUID
	Station    string
	LastScanAt time.Time
}

// GetOrderStatusQueryResponse is the order's aggregate status plus the
// per-part positions it was derived from.
type GetOrderStatusQueryResponse struct {
	OrderID   kernel.UUID
	Status    string
	Completed bool
	Parts     []PartPosition
}
