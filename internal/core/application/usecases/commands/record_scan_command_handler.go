package commands

import (
	"context"
	"encoding/json"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/station"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/keymutex"
)

// RecordScanResult reports the appended event and the order status derived
// from the ledger immediately after the append.
type RecordScanResult struct {
	EventID     kernel.UUID
	Station     string
	OccurredAt  time.Time
	OrderStatus services.OrderStatus
}

// OrderStatusChangedMessage is the advisory payload published after a scan
// commits, for station UIs and order screens that want to refresh without
// polling.
type OrderStatusChangedMessage struct {
	OrderID    string    `json:"orderId"`
	PartID     string    `json:"partId"`
	Station    string    `json:"station"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RecordScanCommandHandler appends scan events to the part tracking ledger.
// It validates the station against the registry before any write, serializes
// writes per part, recomputes the owning order's status, and writes that
// status back to the directory within the same transaction.
//
// Scans for different parts proceed in parallel; only same-part scans
// contend on the per-part lock.
type RecordScanCommandHandler struct {
	uowFactory  LedgerUoWFactory
	pipeline    station.Pipeline
	aggregator  services.OrderStatusAggregator
	locks       *keymutex.KeyMutex
	appender    scanAppender
	publisher   ports.MessagePublisher
	statusTopic string
}

// NewRecordScanCommandHandler creates a handler for scan recording.
// The publisher may be nil, in which case status change notifications are
// skipped.
func NewRecordScanCommandHandler(
	uowFactory LedgerUoWFactory,
	pipeline station.Pipeline,
	aggregator services.OrderStatusAggregator,
	locks *keymutex.KeyMutex,
	publisher ports.MessagePublisher,
	statusTopic string,
) RecordScanCommandHandler {
	return RecordScanCommandHandler{
		uowFactory:  uowFactory,
		pipeline:    pipeline,
		aggregator:  aggregator,
		locks:       locks,
		appender:    newScanAppender(),
		publisher:   publisher,
		statusTopic: statusTopic,
	}
}

// Handle processes one scan. Validation (command shape, station membership,
// part/order existence) happens before any mutation; rework scans pass the
// same path as forward scans. The per-part lock is held from the
// latest-event read until the transaction commits so "most recent event"
// stays well-defined under concurrent scans of the same part.
func (h RecordScanCommandHandler) Handle(ctx context.Context, cmd RecordScanCommand) (RecordScanResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordScanResult{}, err
	}

	st, err := h.pipeline.ByName(cmd.Station())
	if err != nil {
		return RecordScanResult{}, err
	}

	h.locks.Lock(cmd.PartID().String())
	defer h.locks.Unlock(cmd.PartID().String())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RecordScanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.ScanEventRepository()
	directory := uow.OrderDirectory()

	partIDs, err := directory.GetPartIDs(ctx, cmd.OrderID())
	if err != nil {
		return RecordScanResult{}, err
	}
	if !containsUUID(partIDs, cmd.PartID()) {
		return RecordScanResult{}, errs.NewObjectNotFoundError("part", cmd.PartID().String())
	}

	event, err := h.appender.append(ctx, ledger, cmd.PartID(), cmd.OrderID(), st, cmd.ScannedBy(), cmd.Notes())
	if err != nil {
		return RecordScanResult{}, err
	}

	orderStatus, err := h.aggregateOrder(ctx, ledger, partIDs)
	if err != nil {
		return RecordScanResult{}, err
	}

	if err = directory.UpdateLifecycleStatus(ctx, cmd.OrderID(), orderStatus.Name); err != nil {
		return RecordScanResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordScanResult{}, err
	}

	h.publishStatusChanged(ctx, cmd, event.OccurredAt(), orderStatus)

	return RecordScanResult{
		EventID:     event.ID(),
		Station:     event.Station(),
		OccurredAt:  event.OccurredAt(),
		OrderStatus: orderStatus,
	}, nil
}

// aggregateOrder derives the order status from the latest event of every
// part in the order, reading through the handler's transaction so the
// just-appended event is visible.
func (h RecordScanCommandHandler) aggregateOrder(
	ctx context.Context,
	ledger ports.ScanEventRepository,
	partIDs []kernel.UUID,
) (services.OrderStatus, error) {
	latestByPart, err := ledger.GetLatestForParts(ctx, partIDs)
	if err != nil {
		return services.OrderStatus{}, err
	}

	stationNames := make([]string, len(partIDs))
	for i, partID := range partIDs {
		if latest, ok := latestByPart[partID.String()]; ok {
			stationNames[i] = latest.Station()
		}
	}

	return h.aggregator.AggregateStationNames(stationNames)
}

// publishStatusChanged emits the advisory notification after commit. The
// ledger is already durable at this point; a failed publish only delays a
// UI refresh, so the error is dropped.
func (h RecordScanCommandHandler) publishStatusChanged(
	ctx context.Context,
	cmd RecordScanCommand,
	occurredAt time.Time,
	orderStatus services.OrderStatus,
) {
	if h.publisher == nil {
		return
	}

	payload, err := json.Marshal(OrderStatusChangedMessage{
		OrderID:    cmd.OrderID().String(),
		PartID:     cmd.PartID().String(),
		Station:    cmd.Station(),
		Status:     orderStatus.Name,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return
	}

	_ = h.publisher.Publish(ctx, h.statusTopic, payload)
}

func containsUUID(ids []kernel.UUID, target kernel.UUID) bool {
	for _, id := range ids {
		if id.IsEqual(target) {
			return true
		}
	}
	return false
}
