package commands_test

import (
	"context"
	"testing"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/scan"
	"shopfloor/internal/core/domain/model/station"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared mocks for the command handler tests. Every handler works through
// the same three repositories, so the mocks live in one place instead of
// being redeclared per test file.

type MockScanEventRepository struct{ mock.Mock }

func (m *MockScanEventRepository) Add(ctx context.Context, event *scan.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockScanEventRepository) GetLatestForPart(ctx context.Context, partID kernel.UUID) (*scan.Event, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scan.Event), args.Error(1)
}

func (m *MockScanEventRepository) GetLatestForParts(ctx context.Context, partIDs []kernel.UUID) (map[string]*scan.Event, error) {
	args := m.Called(ctx, partIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*scan.Event), args.Error(1)
}

func (m *MockScanEventRepository) GetHistoryForPart(ctx context.Context, partID kernel.UUID) ([]*scan.Event, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scan.Event), args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, aggregate *batch.Batch) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchRepository) GetAllInStatus(ctx context.Context, status batch.Status) ([]*batch.Batch, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) GetActiveBatchOrderIDs(ctx context.Context) (map[string]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]kernel.UUID), args.Error(1)
}

type MockOrderDirectory struct{ mock.Mock }

func (m *MockOrderDirectory) GetOrder(ctx context.Context, orderID kernel.UUID) (ports.DirectoryOrder, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.DirectoryOrder), args.Error(1)
}

func (m *MockOrderDirectory) GetPartIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockOrderDirectory) UpdateLifecycleStatus(ctx context.Context, orderID kernel.UUID, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockLedgerUoW struct{ mock.Mock }

func (m *MockLedgerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) ScanEventRepository() ports.ScanEventRepository {
	args := m.Called()
	return args.Get(0).(ports.ScanEventRepository)
}

func (m *MockLedgerUoW) OrderDirectory() ports.OrderDirectory {
	args := m.Called()
	return args.Get(0).(ports.OrderDirectory)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockBatchUoW struct{ mock.Mock }

func (m *MockBatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ScanEventRepository() ports.ScanEventRepository {
	args := m.Called()
	return args.Get(0).(ports.ScanEventRepository)
}

func (m *MockUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockUoW) OrderDirectory() ports.OrderDirectory {
	args := m.Called()
	return args.Get(0).(ports.OrderDirectory)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockMessagePublisher struct{ mock.Mock }

func (m *MockMessagePublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	args := m.Called(ctx, topic, msg)
	return args.Error(0)
}

func testPipeline(t *testing.T) station.Pipeline {
	t.Helper()
	pipeline, err := station.NewPipeline(station.DefaultDefinitions())
	require.NoError(t, err)
	return pipeline
}

func testAggregator(t *testing.T) services.OrderStatusAggregator {
	t.Helper()
	aggregator, err := services.NewOrderStatusAggregator(testPipeline(t))
	require.NoError(t, err)
	return aggregator
}
