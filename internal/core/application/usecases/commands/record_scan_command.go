package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrRecordScanCommandIsNotConstructed = errors.New(
		"RecordScanCommand must be created via NewRecordScanCommand constructor",
	)
)

// RecordScanCommand represents one physical scan action: an operator
// scanned a part's label at a station. Rework scans (a station earlier in
// the pipeline than one the part already reached) are legal and carry no
// special marking.
type RecordScanCommand struct { //nolint:recvcheck //using for validation
	partID    kernel.UUID
	orderID   kernel.UUID
	station   string
	scannedBy string
	notes     string

	guard guard.ConstructorGuard
}

// NewRecordScanCommand creates a command to append a scan event. Validates
// that part and order ids are valid and the station and operator names are
// present; station membership in the pipeline is checked by the handler
// against the Station Registry.
func NewRecordScanCommand(
	partID kernel.UUID,
	orderID kernel.UUID,
	stationName string,
	scannedBy string,
	notes string,
) (RecordScanCommand, error) {
	scanCommand := RecordScanCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		scanCommand.setPartID(partID),
		scanCommand.setOrderID(orderID),
		scanCommand.setStation(stationName),
		scanCommand.setScannedBy(scannedBy),
	); err != nil {
		return RecordScanCommand{}, err
	}

	return scanCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordScanCommand) Validate() error {
	return c.guard.Validate(ErrRecordScanCommandIsNotConstructed)
}

// PartID returns the scanned part's identifier.
func (c RecordScanCommand) PartID() kernel.UUID {
	return c.partID
}

// OrderID returns the identifier of the order owning the part.
func (c RecordScanCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Station returns the pipeline name of the scanned station.
func (c RecordScanCommand) Station() string {
	return c.station
}

// ScannedBy returns the operator who performed the scan.
func (c RecordScanCommand) ScannedBy() string {
	return c.scannedBy
}

// Notes returns the optional free-text note for the scan.
func (c RecordScanCommand) Notes() string {
	return c.notes
}

func (c *RecordScanCommand) setPartID(partID kernel.UUID) error {
	if err := partID.Validate(); err != nil {
		return err
	}
	c.partID = partID
	return nil
}

func (c *RecordScanCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RecordScanCommand) setStation(stationName string) error {
	if stationName == "" {
		return errs.NewValueIsRequiredError("station")
	}
	c.station = stationName
	return nil
}

func (c *RecordScanCommand) setScannedBy(scannedBy string) error {
	if scannedBy == "" {
		return errs.NewValueIsRequiredError("scannedBy")
	}
	c.scannedBy = scannedBy
	return nil
}
