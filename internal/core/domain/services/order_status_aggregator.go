package services

import (
	"shopfloor/internal/core/domain/model/station"
	"shopfloor/internal/pkg/errs"
)

// OrderStatus is the single aggregate status derived for an order from the
// independent progress of its parts.
type OrderStatus struct {
	// Name is the user-facing status string: the Pending name, a station's
	// configured status name, or the terminal station's status name.
	Name string

	// Ordinal is the minimum pipeline position across the order's parts;
	// station.UnstartedOrdinal when the order is Pending.
	Ordinal int

	// Pending is true when the order has no parts or at least one part has
	// never been scanned.
	Pending bool

	// Completed is true when every part sits at the terminal station.
	Completed bool
}

// OrderStatusAggregator derives order status with the "slowest part wins"
// rule: the order is only as advanced as its least-advanced part, because
// the order cannot ship until that part arrives.
//
// Aggregation is a pure function of the part positions handed in. It never
// touches the ledger itself, so any number of repeated calls over the same
// ledger state return the same answer, and it may run concurrently with
// scans.
type OrderStatusAggregator struct {
	pipeline station.Pipeline
}

// NewOrderStatusAggregator creates an aggregator over the given pipeline.
func NewOrderStatusAggregator(pipeline station.Pipeline) (OrderStatusAggregator, error) {
	if err := pipeline.Validate(); err != nil {
		return OrderStatusAggregator{}, err
	}
	return OrderStatusAggregator{pipeline: pipeline}, nil
}

// Aggregate computes the order status from the pipeline positions of every
// part in the order (station.UnstartedOrdinal for parts with no scans).
//
// Rules:
//   - no parts: Pending (no minimum is computed over an empty set)
//   - any unstarted part: Pending
//   - otherwise the station with the minimum ordinal names the status;
//     if that minimum is the terminal station, the order is Completed
//
// Positions outside the pipeline range are rejected; they can only come
// from a programming error, never from a scan, since stations are validated
// before any write.
func (a OrderStatusAggregator) Aggregate(positions []int) (OrderStatus, error) {
	if len(positions) == 0 {
		return a.pendingStatus(), nil
	}

	minOrdinal := positions[0]
	for _, pos := range positions[1:] {
		if pos < minOrdinal {
			minOrdinal = pos
		}
	}

	if minOrdinal == station.UnstartedOrdinal {
		return a.pendingStatus(), nil
	}

	st, err := a.pipeline.ByOrdinal(minOrdinal)
	if err != nil {
		return OrderStatus{}, err
	}

	return OrderStatus{
		Name:      st.StatusName(),
		Ordinal:   st.Ordinal(),
		Completed: a.pipeline.IsTerminal(st),
	}, nil
}

// AggregateStationNames is a convenience over Aggregate for callers holding
// current station names; the empty string marks an unstarted part. Unknown
// station names fail with a ValueIsInvalidError.
func (a OrderStatusAggregator) AggregateStationNames(stationNames []string) (OrderStatus, error) {
	positions := make([]int, len(stationNames))
	for i, name := range stationNames {
		if name == "" {
			positions[i] = station.UnstartedOrdinal
			continue
		}

		ordinal, err := a.pipeline.OrdinalOf(name)
		if err != nil {
			return OrderStatus{}, errs.NewValueIsInvalidErrorWithCause("currentStation", err)
		}
		positions[i] = ordinal
	}

	return a.Aggregate(positions)
}

func (a OrderStatusAggregator) pendingStatus() OrderStatus {
	return OrderStatus{
		Name:    station.PendingStatusName,
		Ordinal: station.UnstartedOrdinal,
		Pending: true,
	}
}
