package batch

import (
	"fmt"

	"shopfloor/internal/pkg/errs"
)

// Status represents the lifecycle state of a production batch.
//
// State transitions:
//
//	Pending ──> Processing ⇄ Paused
//	               │
//	               └──> Completed
//
// Completion is normally detected automatically once every member order
// reaches the terminal station, but an operator may force any non-Unknown
// batch to Completed as a manual override. Completed is final.
type Status int

const (
	// Unknown represents an invalid or undefined status. This value (0)
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after batch creation, before the batch
	// has been pushed onto the pipeline.
	Pending

	// Processing indicates the batch has been started and its orders are
	// moving through the stations.
	Processing

	// Paused is a display/control state; it never gates scanning.
	Paused

	// Completed indicates every member order reached the terminal station,
	// or an operator forced completion. Final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		Paused:     "Paused",
		Completed:  "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Processing: "Processing",
		Paused:     "Paused",
		Completed:  "Completed",
	}
}

// Validate checks that the Status value is one of the defined lifecycle
// states. Unknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Implements
// fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Start transitions the status to Processing.
//
// Valid transitions:
//   - Pending -> Processing (initial start)
//   - Paused -> Processing (resume)
func (s Status) Start() (Status, error) {
	if s != Pending && s != Paused {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}

	return Processing, nil
}

// Pause transitions the status to Paused. Only a Processing batch can be
// paused.
func (s Status) Pause() (Status, error) {
	if s != Processing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to pause", s.String()),
		)
	}

	return Paused, nil
}

// Complete transitions the status to Completed. Allowed from every valid
// state including Completed itself, so the periodic completion check and a
// concurrent manual override stay idempotent with respect to each other.
func (s Status) Complete() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	return Completed, nil
}

// IsFinal reports whether the status is Completed.
func (s Status) IsFinal() bool {
	return s == Completed
}
