package queries_test

import (
	"context"
	"testing"
	"time"

	"shopfloor/internal/adapters/out/postgres/batchrepo"
	"shopfloor/internal/adapters/out/postgres/directoryrepo"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/batch"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/station"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetUnbatchedOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUnbatchedOrdersQueryHandler
	batches   *batchrepo.GormBatchRepository
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&directoryrepo.OrderDTO{},
		&batchrepo.BatchDTO{},
		&batchrepo.BatchOrderDTO{},
	))

	suite.handler = queries.NewGetUnbatchedOrdersQueryHandler(db)
	suite.batches = batchrepo.NewGormBatchRepository(db)
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, batches, batch_orders").Error)
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) seedOrder(number string) kernel.UUID {
	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&directoryrepo.OrderDTO{
		ID:         orderID.Bytes(),
		Number:     number,
		Customer:   "Nordkitchen AB",
		PanelCount: 12,
		Status:     station.PendingStatusName,
	}).Error)
	return orderID
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) seedBatchWith(orderIDs ...kernel.UUID) *batch.Batch {
	snapshots := make([]batch.OrderSnapshot, len(orderIDs))
	for i, orderID := range orderIDs {
		snapshot, err := batch.NewOrderSnapshot(orderID, "ORD-900", "Nordkitchen AB", 12)
		suite.Require().NoError(err)
		snapshots[i] = snapshot
	}

	created, err := batch.NewBatch(kernel.NewUUID(), "Week 36", snapshots, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.batches.Add(context.Background(), created))
	return created
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) orderIDs(
	responses []queries.GetUnbatchedOrdersQueryResponse,
) []string {
	ids := make([]string, len(responses))
	for i, response := range responses {
		ids[i] = response.OrderID.String()
	}
	return ids
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) TestHandle_ExcludesActiveBatchMembers() {
	free := suite.seedOrder("ORD-100")
	claimed := suite.seedOrder("ORD-200")
	suite.seedBatchWith(claimed)

	orders, err := suite.handler.Handle(context.Background(), queries.NewGetUnbatchedOrdersQuery())
	suite.Require().NoError(err)

	suite.Contains(suite.orderIDs(orders), free.String())
	suite.NotContains(suite.orderIDs(orders), claimed.String())
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) TestHandle_CompletedBatchReleasesOrders() {
	released := suite.seedOrder("ORD-100")
	seeded := suite.seedBatchWith(released)

	suite.Require().NoError(seeded.Start())
	suite.Require().NoError(seeded.Complete(time.Now().UTC()))
	suite.Require().NoError(suite.batches.Update(context.Background(), seeded))

	orders, err := suite.handler.Handle(context.Background(), queries.NewGetUnbatchedOrdersQuery())
	suite.Require().NoError(err)

	suite.Contains(suite.orderIDs(orders), released.String())
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) TestHandle_SortedByNumber() {
	suite.seedOrder("ORD-300")
	suite.seedOrder("ORD-100")
	suite.seedOrder("ORD-200")

	orders, err := suite.handler.Handle(context.Background(), queries.NewGetUnbatchedOrdersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(orders, 3)
	suite.Equal("ORD-100", orders[0].Number)
	suite.Equal("ORD-200", orders[1].Number)
	suite.Equal("ORD-300", orders[2].Number)
}

func (suite *GetUnbatchedOrdersQueryHandlerTestSuite) TestHandle_NoOrders() {
	orders, err := suite.handler.Handle(context.Background(), queries.NewGetUnbatchedOrdersQuery())
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func TestGetUnbatchedOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetUnbatchedOrdersQueryHandlerTestSuite))
}
