package queries

import (
	"context"
	"database/sql"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler computes an order's status from the ledger. One
// query fetches every part with its latest scan (DISTINCT ON keeps only the
// newest event per part); the aggregator then applies the slowest-part rule.
type GetOrderStatusQueryHandler struct {
	db         *gorm.DB
	aggregator services.OrderStatusAggregator
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
func NewGetOrderStatusQueryHandler(
	db *gorm.DB,
	aggregator services.OrderStatusAggregator,
) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db, aggregator: aggregator}
}

// Handle executes the order status query. Unknown orders fail with an
// ObjectNotFoundError; an order with no parts reports the Pending status.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var exists bool
	err := h.db.WithContext(ctx).Raw(`
		SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)
	`, query.OrderID().Bytes()).Row().Scan(&exists)
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	if !exists {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			e.station,
			e.occurred_at
		FROM parts p
		LEFT JOIN (
			SELECT DISTINCT ON (part_id)
				part_id,
				station,
				occurred_at
			FROM scan_events
			ORDER BY part_id, occurred_at DESC
		) e ON e.part_id = p.id
		WHERE p.order_id = ?
		ORDER BY p.id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	defer rows.Close()

	response := GetOrderStatusQueryResponse{
		OrderID: query.OrderID(),
		Parts:   make([]PartPosition, 0),
	}

	for rows.Next() {
		var partIDRaw uuid.UUID
		var station sql.NullString
		var occurredAt sql.NullTime

		if err = rows.Scan(&partIDRaw, &station, &occurredAt); err != nil {
			return GetOrderStatusQueryResponse{}, err
		}

		partID, idErr := kernel.UUIDFromBytes(partIDRaw[:])
		if idErr != nil {
			return GetOrderStatusQueryResponse{}, idErr
		}

		position := PartPosition{PartID: partID}
		if station.Valid {
			position.Station = station.String
		}
		if occurredAt.Valid {
			position.LastScanAt = occurredAt.Time.UTC()
		}
		response.Parts = append(response.Parts, position)
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	stationNames := make([]string, len(response.Parts))
	for i, position := range response.Parts {
		stationNames[i] = position.Station
	}

	status, err := h.aggregator.AggregateStationNames(stationNames)
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	response.Status = status.Name
	response.Completed = status.Completed

	return response, nil
}
