package directoryrepo_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"shopfloor/internal/adapters/out/postgres/directoryrepo"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderDirectoryIntegrationTestSuite verifies the directory adapter against
// a real PostgreSQL, including the sorted part id listing the part lock
// ordering depends on.
type OrderDirectoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	directory *directoryrepo.GormOrderDirectory
}

func (suite *OrderDirectoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&directoryrepo.OrderDTO{}, &directoryrepo.PartDTO{}))
	suite.directory = directoryrepo.NewGormOrderDirectory(db)
}

func (suite *OrderDirectoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderDirectoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, parts").Error)
}

func (suite *OrderDirectoryIntegrationTestSuite) seedOrder(number string, partCount int) kernel.UUID {
	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&directoryrepo.OrderDTO{
		ID:         orderID.Bytes(),
		Number:     number,
		Customer:   "Nordkitchen AB",
		PanelCount: partCount,
		Status:     "Pending",
	}).Error)

	for i := 0; i < partCount; i++ {
		suite.Require().NoError(suite.db.Create(&directoryrepo.PartDTO{
			ID:      kernel.NewUUID().Bytes(),
			OrderID: orderID.Bytes(),
			Label:   "Side panel",
		}).Error)
	}

	return orderID
}

func (suite *OrderDirectoryIntegrationTestSuite) TestGetOrder_RoundTrip() {
	orderID := suite.seedOrder("ORD-100", 2)

	order, err := suite.directory.GetOrder(context.Background(), orderID)
	suite.Require().NoError(err)
	suite.True(order.ID.IsEqual(orderID))
	suite.Equal("ORD-100", order.Number)
	suite.Equal("Nordkitchen AB", order.Customer)
	suite.Equal(2, order.PanelCount)
	suite.Equal("Pending", order.LifecycleStatus)
}

func (suite *OrderDirectoryIntegrationTestSuite) TestGetOrder_NotFound() {
	_, err := suite.directory.GetOrder(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderDirectoryIntegrationTestSuite) TestGetPartIDs_SortedByID() {
	orderID := suite.seedOrder("ORD-100", 5)
	suite.seedOrder("ORD-200", 3)

	partIDs, err := suite.directory.GetPartIDs(context.Background(), orderID)
	suite.Require().NoError(err)
	suite.Require().Len(partIDs, 5)

	asStrings := make([]string, len(partIDs))
	for i, partID := range partIDs {
		asStrings[i] = partID.String()
	}
	suite.True(sort.StringsAreSorted(asStrings))
}

func (suite *OrderDirectoryIntegrationTestSuite) TestGetPartIDs_UnknownOrder() {
	_, err := suite.directory.GetPartIDs(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderDirectoryIntegrationTestSuite) TestUpdateLifecycleStatus_Persists() {
	orderID := suite.seedOrder("ORD-100", 1)

	err := suite.directory.UpdateLifecycleStatus(context.Background(), orderID, "Cutting")
	suite.Require().NoError(err)

	order, err := suite.directory.GetOrder(context.Background(), orderID)
	suite.Require().NoError(err)
	suite.Equal("Cutting", order.LifecycleStatus)
}

func (suite *OrderDirectoryIntegrationTestSuite) TestUpdateLifecycleStatus_UnknownOrder() {
	err := suite.directory.UpdateLifecycleStatus(context.Background(), kernel.NewUUID(), "Cutting")
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderDirectoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderDirectoryIntegrationTestSuite))
}
