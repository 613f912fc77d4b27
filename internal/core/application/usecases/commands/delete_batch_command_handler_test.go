package commands_test

import (
	"testing"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteBatchCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()
	cmd, _ := commands.NewDeleteBatchCommand(batchID)

	batchRepo := new(MockBatchRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Delete", ctx, batchID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteBatchCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	batchRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteBatchCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()
	cmd, _ := commands.NewDeleteBatchCommand(batchID)

	batchRepo := new(MockBatchRepository)
	uow := new(MockBatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BatchRepository").Return(batchRepo).Once()
	batchRepo.On("Delete", ctx, batchID).
		Return(errs.NewObjectNotFoundError("batch", batchID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteBatchCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}
