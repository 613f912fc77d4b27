package queries_test

import (
	"context"
	"testing"
	"time"

	"shopfloor/internal/adapters/out/postgres/directoryrepo"
	"shopfloor/internal/adapters/out/postgres/scaneventrepo"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/scan"
	"shopfloor/internal/core/domain/model/station"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderStatusQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderStatusQueryHandler
	ledger    *scaneventrepo.GormScanEventRepository
}

func (suite *GetOrderStatusQueryHandlerTestSuite) SetupSuite() {
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
		&directoryrepo.PartDTO{},
		&scaneventrepo.ScanEventDTO{},
	))

	pipeline, err := station.NewPipeline(station.DefaultDefinitions())
	suite.Require().NoError(err)
	aggregator, err := services.NewOrderStatusAggregator(pipeline)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderStatusQueryHandler(db, aggregator)
	suite.ledger = scaneventrepo.NewGormScanEventRepository(db)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderStatusQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, parts, scan_events").Error)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) seedOrder(partCount int) (kernel.UUID, []kernel.UUID) {
	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&directoryrepo.OrderDTO{
		ID:         orderID.Bytes(),
		Number:     "ORD-100",
		Customer:   "Nordkitchen AB",
		PanelCount: partCount,
		Status:     station.PendingStatusName,
	}).Error)

	partIDs := make([]kernel.UUID, partCount)
	for i := range partIDs {
		partIDs[i] = kernel.NewUUID()
		suite.Require().NoError(suite.db.Create(&directoryrepo.PartDTO{
			ID:      partIDs[i].Bytes(),
			OrderID: orderID.Bytes(),
			Label:   "Side panel",
		}).Error)
	}

	return orderID, partIDs
}

func (suite *GetOrderStatusQueryHandlerTestSuite) seedScan(
	partID, orderID kernel.UUID,
	stationName string,
	occurredAt time.Time,
) {
	event, err := scan.NewEvent(kernel.NewUUID(), partID, orderID, stationName, "maria", "", occurredAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.Add(context.Background(), event))
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TestHandle_SlowestPartWins() {
	orderID, partIDs := suite.seedOrder(2)
	base := time.Now().UTC().Truncate(time.Microsecond)

	suite.seedScan(partIDs[0], orderID, "Edge Banding", base)
	suite.seedScan(partIDs[1], orderID, "Wall Saw", base)

	query, err := queries.NewGetOrderStatusQuery(orderID)
	suite.Require().NoError(err)

	status, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("Cutting", status.Status)
	suite.False(status.Completed)
	suite.Require().Len(status.Parts, 2)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TestHandle_UnscannedPartHoldsOrderPending() {
	orderID, partIDs := suite.seedOrder(2)
	base := time.Now().UTC().Truncate(time.Microsecond)

	suite.seedScan(partIDs[0], orderID, "Packaging", base)

	query, err := queries.NewGetOrderStatusQuery(orderID)
	suite.Require().NoError(err)

	status, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(station.PendingStatusName, status.Status)
	suite.False(status.Completed)

	scanned := 0
	for _, position := range status.Parts {
		if position.Station != "" {
			scanned++
			suite.False(position.LastScanAt.IsZero())
		} else {
			suite.True(position.LastScanAt.IsZero())
		}
	}
	suite.Equal(1, scanned)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TestHandle_AllPartsAtTerminalStation() {
	orderID, partIDs := suite.seedOrder(2)
	base := time.Now().UTC().Truncate(time.Microsecond)

	for _, partID := range partIDs {
		suite.seedScan(partID, orderID, "Complete", base)
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	suite.Require().NoError(err)

	status, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("Completed", status.Status)
	suite.True(status.Completed)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TestHandle_ReworkMovesStatusBackwards() {
	orderID, partIDs := suite.seedOrder(1)
	base := time.Now().UTC().Truncate(time.Microsecond)

	suite.seedScan(partIDs[0], orderID, "Edge Banding", base)
	suite.seedScan(partIDs[0], orderID, "Wall Saw", base.Add(time.Minute))

	query, err := queries.NewGetOrderStatusQuery(orderID)
	suite.Require().NoError(err)

	status, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("Cutting", status.Status)
	suite.Equal("Wall Saw", status.Parts[0].Station)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TestHandle_UnknownOrder() {
	query, err := queries.NewGetOrderStatusQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetOrderStatusQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderStatusQueryHandlerTestSuite))
}
