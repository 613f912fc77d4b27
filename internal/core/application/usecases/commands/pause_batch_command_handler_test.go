package commands_test

import (
	"testing"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPauseBatchCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()
	aggregate := pendingBatch(t, batchID, kernel.NewUUID())
	require.NoError(t, aggregate.Start())
	cmd, _ := commands.NewPauseBatchCommand(batchID)

	batchRepo := new(MockBatchRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, batchID).Return(aggregate, nil).Once(),
		batchRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPauseBatchCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, batch.Paused, aggregate.Status())
	batchRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPauseBatchCommandHandler_Handle_NotProcessing(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()
	aggregate := pendingBatch(t, batchID, kernel.NewUUID())
	cmd, _ := commands.NewPauseBatchCommand(batchID)

	batchRepo := new(MockBatchRepository)
	uow := new(MockBatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BatchRepository").Return(batchRepo).Once()
	batchRepo.On("Get", ctx, batchID).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPauseBatchCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, batch.Pending, aggregate.Status())
	batchRepo.AssertNotCalled(t, "Update", ctx, aggregate)
	uow.AssertNotCalled(t, "Commit", ctx)
}
