package station

import (
	"errors"
	"fmt"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

// UnstartedOrdinal is the pipeline position of a part with no scan events.
// It sorts before the first station so an unscanned part always drags its
// order's aggregate status down to Pending.
const UnstartedOrdinal = -1

// PendingStatusName is the user-facing order status shown before every part
// of the order has entered the pipeline.
const PendingStatusName = "Pending"

var (
	// ErrPipelineIsNotConstructed is returned when a Pipeline was not built
	// via NewPipeline.
	ErrPipelineIsNotConstructed = errors.New("Pipeline must be created via NewPipeline constructor")

	// ErrTooFewStations is returned when a pipeline definition holds fewer
	// than two stations; a pipeline needs at least one working station and a
	// terminal one.
	ErrTooFewStations = errors.New("pipeline requires at least two stations")
)

// Definition pairs a station's pipeline name with the user-facing order
// status it maps to (e.g. "Wall Saw" -> "Cutting"). The two naming schemes
// are kept as configuration rather than hard-coded because station UIs and
// order screens historically used slightly different vocabularies.
type Definition struct {
	Name       string
	StatusName string
}

// DefaultDefinitions returns the standard woodshop pipeline used when no
// configuration is supplied.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: "Wall Saw", StatusName: "Cutting"},
		{Name: "CNC", StatusName: "Drilling"},
		{Name: "Edge Banding", StatusName: "Edging"},
		{Name: "Packaging", StatusName: "Packing"},
		{Name: "Complete", StatusName: "Completed"},
	}
}

// Station is an entry in the fixed ordered pipeline of physical stations.
// Stations are value objects created only by NewPipeline, which assigns the
// ordinal from the definition order.
type Station struct {
	name       string
	statusName string
	ordinal    int
}

// Name returns the station's pipeline name, the identifier carried by scan
// events.
func (s Station) Name() string {
	return s.name
}

// StatusName returns the user-facing order status associated with the
// station.
func (s Station) StatusName() string {
	return s.statusName
}

// Ordinal returns the station's zero-based position in the pipeline.
func (s Station) Ordinal() int {
	return s.ordinal
}

// Pipeline is the fixed ordered sequence of stations a part moves through.
// It is immutable and loaded once at startup; the last station is terminal.
// All "minimum progress" and "next station" questions are answered here so
// callers never reason about array positions themselves.
type Pipeline struct {
	stations []Station
	byName   map[string]int

	guard guard.ConstructorGuard
}

// NewPipeline builds a Pipeline from an ordered definition list. Ordinals
// are assigned from the list order, so they are unique and strictly
// increasing by construction. Fails on fewer than two stations, empty
// names, empty status names, or duplicate station names.
func NewPipeline(defs []Definition) (Pipeline, error) {
	if len(defs) < 2 {
		return Pipeline{}, ErrTooFewStations
	}

	stations := make([]Station, 0, len(defs))
	byName := make(map[string]int, len(defs))
	for i, def := range defs {
		if def.Name == "" {
			return Pipeline{}, errs.NewValueIsRequiredError(fmt.Sprintf("station name at position %d", i))
		}
		if def.StatusName == "" {
			return Pipeline{}, errs.NewValueIsRequiredError(fmt.Sprintf("status name for station %q", def.Name))
		}
		if _, exists := byName[def.Name]; exists {
			return Pipeline{}, errs.NewValueIsInvalidErrorWithCause(
				"station name",
				fmt.Errorf("%q appears more than once in the pipeline", def.Name),
			)
		}

		stations = append(stations, Station{
			name:       def.Name,
			statusName: def.StatusName,
			ordinal:    i,
		})
		byName[def.Name] = i
	}

	return Pipeline{
		stations: stations,
		byName:   byName,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the pipeline was built via NewPipeline.
func (p Pipeline) Validate() error {
	return p.guard.Validate(ErrPipelineIsNotConstructed)
}

// Stations returns the ordered station list. The slice is a copy; mutating
// it does not affect the pipeline.
func (p Pipeline) Stations() []Station {
	out := make([]Station, len(p.stations))
	copy(out, p.stations)
	return out
}

// Len returns the number of stations in the pipeline.
func (p Pipeline) Len() int {
	return len(p.stations)
}

// ByName resolves a station by its pipeline name. Unknown names fail with a
// ValueIsInvalidError; this is the single validation point for inbound scan
// stations.
func (p Pipeline) ByName(name string) (Station, error) {
	i, ok := p.byName[name]
	if !ok {
		return Station{}, errs.NewValueIsInvalidErrorWithCause(
			"station",
			fmt.Errorf("%q is not a station in the pipeline", name),
		)
	}
	return p.stations[i], nil
}

// OrdinalOf returns the pipeline position of the named station.
func (p Pipeline) OrdinalOf(name string) (int, error) {
	st, err := p.ByName(name)
	if err != nil {
		return 0, err
	}
	return st.Ordinal(), nil
}

// ByOrdinal resolves a station by its pipeline position.
func (p Pipeline) ByOrdinal(ordinal int) (Station, error) {
	if ordinal < 0 || ordinal >= len(p.stations) {
		return Station{}, errs.NewValueIsOutOfRangeError("ordinal", ordinal, 0, len(p.stations)-1)
	}
	return p.stations[ordinal], nil
}

// First returns the entry station of the pipeline, the one every part of a
// started batch is scanned onto.
func (p Pipeline) First() Station {
	return p.stations[0]
}

// Terminal returns the last station of the pipeline.
func (p Pipeline) Terminal() Station {
	return p.stations[len(p.stations)-1]
}

// IsTerminal reports whether the station is the last one in the pipeline.
func (p Pipeline) IsTerminal(st Station) bool {
	return st.Ordinal() == len(p.stations)-1
}

// Next returns the station after st, or false if st is terminal. Note that
// Next describes the nominal forward path only; a part may legally be
// scanned to any station (rework).
func (p Pipeline) Next(st Station) (Station, bool) {
	if p.IsTerminal(st) {
		return Station{}, false
	}
	return p.stations[st.Ordinal()+1], true
}
