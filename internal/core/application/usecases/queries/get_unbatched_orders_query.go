package queries

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrGetUnbatchedOrdersQueryIsNotConstructed = errors.New(
		"GetUnbatchedOrdersQuery must be created via NewGetUnbatchedOrdersQuery constructor",
	)
)

// GetUnbatchedOrdersQuery retrieves orders not claimed by any active batch.
// These are the candidates the batch creation screen offers.
type GetUnbatchedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnbatchedOrdersQuery creates a parameterless query for unbatched
// orders.
func NewGetUnbatchedOrdersQuery() GetUnbatchedOrdersQuery {
	return GetUnbatchedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnbatchedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnbatchedOrdersQueryIsNotConstructed)
}

// GetUnbatchedOrdersQueryResponse is one order available for batching.
type GetUnbatchedOrdersQueryResponse struct {
	OrderID    kernel.UUID
	Number     string
	Customer   string
	PanelCount int
	Status     string
}
