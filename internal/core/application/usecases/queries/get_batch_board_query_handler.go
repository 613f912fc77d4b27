package queries

import (
	"context"
	"database/sql"

	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBatchBoardQueryHandler assembles the batch board: batches joined with
// their order snapshots, plus each member order's status recomputed from the
// ledger. Progress is the share of member orders whose recomputed status is
// the completed one.
type GetBatchBoardQueryHandler struct {
	db         *gorm.DB
	aggregator services.OrderStatusAggregator
}

// NewGetBatchBoardQueryHandler creates a handler for batch board queries.
func NewGetBatchBoardQueryHandler(db *gorm.DB, aggregator services.OrderStatusAggregator) GetBatchBoardQueryHandler {
	return GetBatchBoardQueryHandler{db: db, aggregator: aggregator}
}

// Handle executes the batch board query. Batches come back newest first.
func (h GetBatchBoardQueryHandler) Handle(
	ctx context.Context,
	query GetBatchBoardQuery,
) ([]BatchBoardRow, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.name,
			b.status,
			b.created_at,
			b.completed_at,
			bo.order_id,
			bo.number,
			bo.customer,
			bo.panel_count
		FROM batches b
		JOIN batch_orders bo ON bo.batch_id = b.id
		ORDER BY b.created_at DESC, b.id, bo.order_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	board := make([]BatchBoardRow, 0)
	rowIndex := make(map[string]int)
	orderIDs := make([]kernel.UUID, 0)

	for rows.Next() {
		var batchIDRaw, orderIDRaw uuid.UUID
		var name string
		var status int
		var createdAt sql.NullTime
		var completedAt sql.NullTime
		var number, customer string
		var panelCount int

		err = rows.Scan(
			&batchIDRaw, &name, &status, &createdAt, &completedAt,
			&orderIDRaw, &number, &customer, &panelCount,
		)
		if err != nil {
			return nil, err
		}

		batchID, idErr := kernel.UUIDFromBytes(batchIDRaw[:])
		if idErr != nil {
			return nil, idErr
		}

		index, seen := rowIndex[batchID.String()]
		if !seen {
			row := BatchBoardRow{
				BatchID: batchID,
				Name:    name,
				Status:  batch.Status(status).String(),
				Orders:  make([]BatchBoardOrder, 0),
			}
			if createdAt.Valid {
				row.CreatedAt = createdAt.Time.UTC()
			}
			if completedAt.Valid {
				at := completedAt.Time.UTC()
				row.CompletedAt = &at
			}
			board = append(board, row)
			index = len(board) - 1
			rowIndex[batchID.String()] = index
		}

		orderID, idErr := kernel.UUIDFromBytes(orderIDRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		orderIDs = append(orderIDs, orderID)

		board[index].Orders = append(board[index].Orders, BatchBoardOrder{
			OrderID:    orderID,
			Number:     number,
			Customer:   customer,
			PanelCount: panelCount,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	statuses, err := h.orderStatuses(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	for i := range board {
		completed := 0
		for j := range board[i].Orders {
			status := statuses[board[i].Orders[j].OrderID.String()]
			board[i].Orders[j].Status = status.Name
			if status.Completed {
				completed++
			}
		}
		if len(board[i].Orders) > 0 {
			board[i].Progress = float64(completed) / float64(len(board[i].Orders)) * 100
		}
	}

	return board, nil
}

// orderStatuses recomputes each order's status from its parts' latest scan
// events, the same derivation the order status query and the completion
// check use. An order with no parts rows aggregates to Pending.
func (h GetBatchBoardQueryHandler) orderStatuses(
	ctx context.Context,
	orderIDs []kernel.UUID,
) (map[string]services.OrderStatus, error) {
	statuses := make(map[string]services.OrderStatus, len(orderIDs))
	if len(orderIDs) == 0 {
		return statuses, nil
	}

	ids := make([]any, len(orderIDs))
	for i, orderID := range orderIDs {
		ids[i] = orderID.Bytes()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.order_id,
			e.station
		FROM parts p
		LEFT JOIN (
			SELECT DISTINCT ON (part_id)
				part_id,
				station
			FROM scan_events
			ORDER BY part_id, occurred_at DESC
		) e ON e.part_id = p.id
		WHERE p.order_id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stationsByOrder := make(map[string][]string)
	for rows.Next() {
		var orderIDRaw uuid.UUID
		var station sql.NullString

		if err = rows.Scan(&orderIDRaw, &station); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(orderIDRaw[:])
		if idErr != nil {
			return nil, idErr
		}

		name := ""
		if station.Valid {
			name = station.String
		}
		stationsByOrder[orderID.String()] = append(stationsByOrder[orderID.String()], name)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, orderID := range orderIDs {
		status, aggErr := h.aggregator.AggregateStationNames(stationsByOrder[orderID.String()])
		if aggErr != nil {
			return nil, aggErr
		}
		statuses[orderID.String()] = status
	}

	return statuses, nil
}
