package queries_test

import (
	"testing"

	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPartTrackQuery_ValidInput(t *testing.T) {
	partID := kernel.NewUUID()
	query, err := queries.NewGetPartTrackQuery(partID)
	require.NoError(t, err)
	assert.Equal(t, partID, query.PartID())
	require.NoError(t, query.Validate())
}

func TestNewGetPartTrackQuery_InvalidPartID(t *testing.T) {
	_, err := queries.NewGetPartTrackQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetPartTrackQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetPartTrackQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetPartTrackQueryIsNotConstructed)
}
