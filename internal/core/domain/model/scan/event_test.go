package scan_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/scan"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creates a valid event", func(t *testing.T) {
		event, err := scan.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Wall Saw", "operator-7", "first panel of the run", now,
		)

		require.NoError(t, err)
		require.NoError(t, event.Validate())
		assert.Equal(t, "Wall Saw", event.Station())
		assert.Equal(t, "operator-7", event.ScannedBy())
		assert.Equal(t, "first panel of the run", event.Notes())
		assert.Equal(t, now, event.OccurredAt())
	})

	t.Run("notes are optional", func(t *testing.T) {
		event, err := scan.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"CNC", "operator-7", "", now,
		)

		require.NoError(t, err)
		assert.Empty(t, event.Notes())
	})

	t.Run("requires all identifiers", func(t *testing.T) {
		var zero kernel.UUID

		_, err := scan.NewEvent(zero, kernel.NewUUID(), kernel.NewUUID(), "CNC", "op", "", now)
		require.Error(t, err)

		_, err = scan.NewEvent(kernel.NewUUID(), zero, kernel.NewUUID(), "CNC", "op", "", now)
		require.Error(t, err)

		_, err = scan.NewEvent(kernel.NewUUID(), kernel.NewUUID(), zero, "CNC", "op", "", now)
		require.Error(t, err)
	})

	t.Run("requires station, operator, and timestamp", func(t *testing.T) {
		_, err := scan.NewEvent(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", "op", "", now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = scan.NewEvent(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "CNC", "", "", now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = scan.NewEvent(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "CNC", "op", "", time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreEvent(t *testing.T) {
	t.Run("reconstructs a persisted event", func(t *testing.T) {
		id := kernel.NewUUID()
		at := time.Now().UTC().Add(-time.Hour)

		event, err := scan.RestoreEvent(id, kernel.NewUUID(), kernel.NewUUID(), "Packaging", "op", "rework", at)

		require.NoError(t, err)
		assert.True(t, event.ID().IsEqual(id))
		assert.Equal(t, at, event.OccurredAt())
	})
}

func TestEvent_Validate(t *testing.T) {
	t.Run("bare struct fails validation", func(t *testing.T) {
		var event scan.Event
		require.ErrorIs(t, event.Validate(), scan.ErrEventIsNotConstructed)
	})

	t.Run("nil event fails validation", func(t *testing.T) {
		var event *scan.Event
		require.ErrorIs(t, event.Validate(), scan.ErrEventIsNotConstructed)
	})
}
