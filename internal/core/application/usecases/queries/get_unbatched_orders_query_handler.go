package queries

import (
	"context"
	"database/sql"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnbatchedOrdersQueryHandler lists orders free for batching. An order is
// free when no active (non-Completed) batch claims it; completed batches
// release their orders.
type GetUnbatchedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnbatchedOrdersQueryHandler creates a handler for unbatched order
// queries.
func NewGetUnbatchedOrdersQueryHandler(db *gorm.DB) GetUnbatchedOrdersQueryHandler {
	return GetUnbatchedOrdersQueryHandler{db: db}
}

// Handle executes the unbatched orders query, sorted by order number.
func (h GetUnbatchedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnbatchedOrdersQuery,
) ([]GetUnbatchedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.customer,
			o.panel_count,
			o.status
		FROM orders o
		WHERE NOT EXISTS (
			SELECT 1
			FROM batch_orders bo
			JOIN batches b ON b.id = bo.batch_id
			WHERE bo.order_id = o.id
			  AND b.status != ?
		)
		ORDER BY o.number
	`, int(batch.Completed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetUnbatchedOrdersQueryResponse, 0)
	for rows.Next() {
		var idRaw uuid.UUID
		var response GetUnbatchedOrdersQueryResponse
		var status sql.NullString

		if err = rows.Scan(&idRaw, &response.Number, &response.Customer, &response.PanelCount, &status); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(idRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OrderID = orderID
		if status.Valid {
			response.Status = status.String
		}
		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
