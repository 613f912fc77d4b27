// Package http exposes the production tracking operations over REST. The
// handlers translate between JSON payloads and commands/queries; all
// business rules live in the use case layer.
package http

import (
	"errors"
	"net/http"
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	recordScanHandler      commands.RecordScanCommandHandler
	createBatchHandler     commands.CreateBatchCommandHandler
	startBatchHandler      commands.StartBatchCommandHandler
	pauseBatchHandler      commands.PauseBatchCommandHandler
	completeBatchHandler   commands.CompleteBatchCommandHandler
	deleteBatchHandler     commands.DeleteBatchCommandHandler
	checkCompletionHandler commands.CheckBatchCompletionCommandHandler

	getPartTrackHandler      queries.GetPartTrackQueryHandler
	getOrderStatusHandler    queries.GetOrderStatusQueryHandler
	getBatchBoardHandler     queries.GetBatchBoardQueryHandler
	getUnbatchedOrderHandler queries.GetUnbatchedOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	recordScanHandler commands.RecordScanCommandHandler,
	createBatchHandler commands.CreateBatchCommandHandler,
	startBatchHandler commands.StartBatchCommandHandler,
	pauseBatchHandler commands.PauseBatchCommandHandler,
	completeBatchHandler commands.CompleteBatchCommandHandler,
	deleteBatchHandler commands.DeleteBatchCommandHandler,
	checkCompletionHandler commands.CheckBatchCompletionCommandHandler,
	getPartTrackHandler queries.GetPartTrackQueryHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
	getBatchBoardHandler queries.GetBatchBoardQueryHandler,
	getUnbatchedOrderHandler queries.GetUnbatchedOrdersQueryHandler,
) *Server {
	return &Server{
		recordScanHandler:        recordScanHandler,
		createBatchHandler:       createBatchHandler,
		startBatchHandler:        startBatchHandler,
		pauseBatchHandler:        pauseBatchHandler,
		completeBatchHandler:     completeBatchHandler,
		deleteBatchHandler:       deleteBatchHandler,
		checkCompletionHandler:   checkCompletionHandler,
		getPartTrackHandler:      getPartTrackHandler,
		getOrderStatusHandler:    getOrderStatusHandler,
		getBatchBoardHandler:     getBatchBoardHandler,
		getUnbatchedOrderHandler: getUnbatchedOrderHandler,
	}
}

// RegisterRoutes wires the production tracking endpoints onto the echo
// instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/scans", s.RecordScan)
	api.GET("/parts/:id/track", s.GetPartTrack)
	api.GET("/orders/:id/status", s.GetOrderStatus)
	api.GET("/orders/unbatched", s.GetUnbatchedOrders)

	api.GET("/batches", s.GetBatchBoard)
	api.POST("/batches", s.CreateBatch)
	api.POST("/batches/:id/start", s.StartBatch)
	api.POST("/batches/:id/pause", s.PauseBatch)
	api.POST("/batches/:id/complete", s.CompleteBatch)
	api.POST("/batches/:id/check", s.CheckBatchCompletion)
	api.DELETE("/batches/:id", s.DeleteBatch)
}

// ErrorResponse is the JSON payload for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorJSON(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}

// writeDomainError maps use case errors onto HTTP statuses: unknown objects
// to 404, invalid input to 400, state conflicts to 409.
func writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, batch.ErrEmptyBatch):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, commands.ErrOrderAlreadyBatched):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, err.Error())
	}
}

func parseID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errorJSON(ctx, http.StatusBadRequest, "invalid "+name+" id")
	}
	return id, nil
}

// RecordScanRequest is the payload for POST /api/v1/scans.
type RecordScanRequest struct {
	PartID    string `json:"partId"`
	OrderID   string `json:"orderId"`
	Station   string `json:"station"`
	ScannedBy string `json:"scannedBy"`
	Notes     string `json:"notes,omitempty"`
}

// RecordScanResponse reports the appended event and the resulting order
// status.
type RecordScanResponse struct {
	EventID     string    `json:"eventId"`
	Station     string    `json:"station"`
	OccurredAt  time.Time `json:"occurredAt"`
	OrderStatus string    `json:"orderStatus"`
}

// RecordScan handles POST /api/v1/scans - appends one scan event.
func (s *Server) RecordScan(ctx echo.Context) error {
	var request RecordScanRequest
	if err := ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	partID, err := kernel.UUIDFromString(request.PartID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid part id")
	}
	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewRecordScanCommand(partID, orderID, request.Station, request.ScannedBy, request.Notes)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.recordScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RecordScanResponse{
		EventID:     result.EventID.String(),
		Station:     result.Station,
		OccurredAt:  result.OccurredAt,
		OrderStatus: result.OrderStatus.Name,
	})
}

// ScanRecordResponse is one row of a part's track.
type ScanRecordResponse struct {
	Station    string    `json:"station"`
	ScannedBy  string    `json:"scannedBy"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// PartTrackResponse is a part's full movement record.
type PartTrackResponse struct {
	PartID         string               `json:"partId"`
	OrderID        string               `json:"orderId"`
	CurrentStation string               `json:"currentStation,omitempty"`
	Scans          []ScanRecordResponse `json:"scans"`
}

// GetPartTrack handles GET /api/v1/parts/:id/track.
func (s *Server) GetPartTrack(ctx echo.Context) error {
	partID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetPartTrackQuery(partID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	track, err := s.getPartTrackHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := PartTrackResponse{
		PartID:         track.PartID.String(),
		OrderID:        track.OrderID.String(),
		CurrentStation: track.CurrentStation,
		Scans:          make([]ScanRecordResponse, len(track.Scans)),
	}
	for i, record := range track.Scans {
		response.Scans[i] = ScanRecordResponse{
			Station:    record.Station,
			ScannedBy:  record.ScannedBy,
			Notes:      record.Notes,
			OccurredAt: record.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PartPositionResponse is one part's current position within an order.
type PartPositionResponse struct {
	PartID     string     `json:"partId"`
	Station    string     `json:"station,omitempty"`
	LastScanAt *time.Time `json:"lastScanAt,omitempty"`
}

// OrderStatusResponse is the derived status of one order.
type OrderStatusResponse struct {
	OrderID   string                 `json:"orderId"`
	Status    string                 `json:"status"`
	Completed bool                   `json:"completed"`
	Parts     []PartPositionResponse `json:"parts"`
}

// GetOrderStatus handles GET /api/v1/orders/:id/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := OrderStatusResponse{
		OrderID:   status.OrderID.String(),
		Status:    status.Status,
		Completed: status.Completed,
		Parts:     make([]PartPositionResponse, len(status.Parts)),
	}
	for i, position := range status.Parts {
		partResponse := PartPositionResponse{
			PartID:  position.PartID.String(),
			Station: position.Station,
		}
		if !position.LastScanAt.IsZero() {
			at := position.LastScanAt
			partResponse.LastScanAt = &at
		}
		response.Parts[i] = partResponse
	}

	return ctx.JSON(http.StatusOK, response)
}

// UnbatchedOrderResponse is one order available for batching.
type UnbatchedOrderResponse struct {
	OrderID    string `json:"orderId"`
	Number     string `json:"number"`
	Customer   string `json:"customer"`
	PanelCount int    `json:"panelCount"`
	Status     string `json:"status,omitempty"`
}

// GetUnbatchedOrders handles GET /api/v1/orders/unbatched.
func (s *Server) GetUnbatchedOrders(ctx echo.Context) error {
	orders, err := s.getUnbatchedOrderHandler.Handle(ctx.Request().Context(), queries.NewGetUnbatchedOrdersQuery())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]UnbatchedOrderResponse, len(orders))
	for i, order := range orders {
		response[i] = UnbatchedOrderResponse{
			OrderID:    order.OrderID.String(),
			Number:     order.Number,
			Customer:   order.Customer,
			PanelCount: order.PanelCount,
			Status:     order.Status,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// BatchBoardOrderResponse is one member order on the batch board.
type BatchBoardOrderResponse struct {
	OrderID    string `json:"orderId"`
	Number     string `json:"number"`
	Customer   string `json:"customer"`
	PanelCount int    `json:"panelCount"`
	Status     string `json:"status,omitempty"`
}

// BatchBoardRowResponse is one batch on the board.
type BatchBoardRowResponse struct {
	BatchID     string                    `json:"batchId"`
	Name        string                    `json:"name"`
	Status      string                    `json:"status"`
	Progress    float64                   `json:"progress"`
	CreatedAt   time.Time                 `json:"createdAt"`
	CompletedAt *time.Time                `json:"completedAt,omitempty"`
	Orders      []BatchBoardOrderResponse `json:"orders"`
}

// GetBatchBoard handles GET /api/v1/batches.
func (s *Server) GetBatchBoard(ctx echo.Context) error {
	board, err := s.getBatchBoardHandler.Handle(ctx.Request().Context(), queries.NewGetBatchBoardQuery())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]BatchBoardRowResponse, len(board))
	for i, row := range board {
		orders := make([]BatchBoardOrderResponse, len(row.Orders))
		for j, boardOrder := range row.Orders {
			orders[j] = BatchBoardOrderResponse{
				OrderID:    boardOrder.OrderID.String(),
				Number:     boardOrder.Number,
				Customer:   boardOrder.Customer,
				PanelCount: boardOrder.PanelCount,
				Status:     boardOrder.Status,
			}
		}
		response[i] = BatchBoardRowResponse{
			BatchID:     row.BatchID.String(),
			Name:        row.Name,
			Status:      row.Status,
			Progress:    row.Progress,
			CreatedAt:   row.CreatedAt,
			CompletedAt: row.CompletedAt,
			Orders:      orders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateBatchRequest is the payload for POST /api/v1/batches.
type CreateBatchRequest struct {
	Name     string   `json:"name"`
	OrderIDs []string `json:"orderIds"`
}

// RejectedOrderResponse explains why one candidate was excluded.
type RejectedOrderResponse struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// CreateBatchResponse reports the created batch and the per-order outcome.
type CreateBatchResponse struct {
	BatchID  string                  `json:"batchId"`
	Accepted []string                `json:"accepted"`
	Rejected []RejectedOrderResponse `json:"rejected,omitempty"`
}

// CreateBatch handles POST /api/v1/batches.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var request CreateBatchRequest
	if err := ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		orderID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, orderID)
	}

	cmd, err := commands.NewCreateBatchCommand(kernel.NewUUID(), request.Name, orderIDs)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	result, err := s.createBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := CreateBatchResponse{
		BatchID:  result.BatchID.String(),
		Accepted: make([]string, len(result.Accepted)),
	}
	for i, accepted := range result.Accepted {
		response.Accepted[i] = accepted.String()
	}
	for _, rejected := range result.Rejected {
		response.Rejected = append(response.Rejected, RejectedOrderResponse{
			OrderID: rejected.OrderID.String(),
			Reason:  rejected.Cause.Error(),
		})
	}

	return ctx.JSON(http.StatusCreated, response)
}

// StartBatchRequest is the payload for POST /api/v1/batches/:id/start.
type StartBatchRequest struct {
	StartedBy string `json:"startedBy"`
}

// StartBatchResponse reports orders that failed to start; an empty list
// means every order advanced.
type StartBatchResponse struct {
	BatchID      string   `json:"batchId"`
	FailedOrders []string `json:"failedOrders,omitempty"`
}

// StartBatch handles POST /api/v1/batches/:id/start. A partial failure
// still leaves the batch Processing; the response lists the orders to retry
// and the status code is 207.
func (s *Server) StartBatch(ctx echo.Context) error {
	batchID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	var request StartBatchRequest
	if err = ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewStartBatchCommand(batchID, request.StartedBy)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	err = s.startBatchHandler.Handle(ctx.Request().Context(), cmd)

	var partial *commands.PartialBatchStartError
	if errors.As(err, &partial) {
		response := StartBatchResponse{BatchID: batchID.String()}
		for _, orderID := range partial.FailedOrderIDs() {
			response.FailedOrders = append(response.FailedOrders, orderID.String())
		}
		return ctx.JSON(http.StatusMultiStatus, response)
	}
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StartBatchResponse{BatchID: batchID.String()})
}

// PauseBatch handles POST /api/v1/batches/:id/pause.
func (s *Server) PauseBatch(ctx echo.Context) error {
	return s.handleLifecycle(ctx, func(batchID kernel.UUID) error {
		cmd, err := commands.NewPauseBatchCommand(batchID)
		if err != nil {
			return err
		}
		return s.pauseBatchHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CompleteBatch handles POST /api/v1/batches/:id/complete.
func (s *Server) CompleteBatch(ctx echo.Context) error {
	return s.handleLifecycle(ctx, func(batchID kernel.UUID) error {
		cmd, err := commands.NewCompleteBatchCommand(batchID)
		if err != nil {
			return err
		}
		return s.completeBatchHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// DeleteBatch handles DELETE /api/v1/batches/:id.
func (s *Server) DeleteBatch(ctx echo.Context) error {
	return s.handleLifecycle(ctx, func(batchID kernel.UUID) error {
		cmd, err := commands.NewDeleteBatchCommand(batchID)
		if err != nil {
			return err
		}
		return s.deleteBatchHandler.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) handleLifecycle(ctx echo.Context, action func(kernel.UUID) error) error {
	batchID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	if err = action(batchID); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BatchCompletionResponse reports the progress computed for one batch.
type BatchCompletionResponse struct {
	BatchID         string  `json:"batchId"`
	TotalOrders     int     `json:"totalOrders"`
	CompletedOrders int     `json:"completedOrders"`
	Progress        float64 `json:"progress"`
	Completed       bool    `json:"completed"`
}

// CheckBatchCompletion handles POST /api/v1/batches/:id/check - forces an
// immediate completion check instead of waiting for the background sweep.
func (s *Server) CheckBatchCompletion(ctx echo.Context) error {
	batchID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCheckBatchCompletionCommandForBatch(batchID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	results, err := s.checkCompletionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]BatchCompletionResponse, len(results))
	for i, result := range results {
		response[i] = BatchCompletionResponse{
			BatchID:         result.BatchID,
			TotalOrders:     result.TotalOrders,
			CompletedOrders: result.CompletedOrders,
			Progress:        result.Progress,
			Completed:       result.Completed,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
