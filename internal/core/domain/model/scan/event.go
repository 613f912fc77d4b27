package scan

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not
// created through NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event is an immutable record that a specific part was observed at a
// specific station at a specific time. Events form the append-only part
// tracking ledger: they are never mutated or deleted, and a part may have
// any number of them, including repeats of earlier stations (rework).
//
// The station field carries the pipeline name as validated by the Station
// Registry at record time; the event itself stores it as an opaque string
// so historical events survive pipeline reconfiguration.
type Event struct {
	id         kernel.UUID
	partID     kernel.UUID
	orderID    kernel.UUID
	station    string
	scannedBy  string
	notes      string
	occurredAt time.Time

	isConstructed bool
}

// NewEvent creates a scan event for a single physical scan action. The
// occurredAt timestamp is server-assigned by the recording use case, which
// guarantees it is strictly greater than any prior event for the same part.
func NewEvent(
	id kernel.UUID,
	partID kernel.UUID,
	orderID kernel.UUID,
	stationName string,
	scannedBy string,
	notes string,
	occurredAt time.Time,
) (*Event, error) {
	event := &Event{
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		event.setID(id),
		event.setPartID(partID),
		event.setOrderID(orderID),
		event.setStation(stationName),
		event.setScannedBy(scannedBy),
		event.setOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	return event, nil
}

// RestoreEvent reconstructs an event from persistence. It applies the same
// validation as NewEvent; ledger rows are trusted but not blindly.
func RestoreEvent(
	id kernel.UUID,
	partID kernel.UUID,
	orderID kernel.UUID,
	stationName string,
	scannedBy string,
	notes string,
	occurredAt time.Time,
) (*Event, error) {
	return NewEvent(id, partID, orderID, stationName, scannedBy, notes, occurredAt)
}

// Validate ensures the event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// PartID returns the scanned part's identifier.
func (e *Event) PartID() kernel.UUID {
	return e.partID
}

// OrderID returns the identifier of the order owning the part.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Station returns the pipeline name of the station where the part was
// observed.
func (e *Event) Station() string {
	return e.station
}

// ScannedBy returns the operator who performed the scan.
func (e *Event) ScannedBy() string {
	return e.scannedBy
}

// Notes returns the optional free-text note attached to the scan.
func (e *Event) Notes() string {
	return e.notes
}

// OccurredAt returns the server-assigned timestamp of the scan.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setPartID(partID kernel.UUID) error {
	if err := partID.Validate(); err != nil {
		return err
	}
	e.partID = partID
	return nil
}

func (e *Event) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Event) setStation(stationName string) error {
	if stationName == "" {
		return errs.NewValueIsRequiredError("station")
	}
	e.station = stationName
	return nil
}

func (e *Event) setScannedBy(scannedBy string) error {
	if scannedBy == "" {
		return errs.NewValueIsRequiredError("scannedBy")
	}
	e.scannedBy = scannedBy
	return nil
}

func (e *Event) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	e.occurredAt = occurredAt
	return nil
}
