package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repositories' aggregate tracker without recording.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, interface{}) {}

type GetOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrdersQueryHandler
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrdersQueryHandler(db)
}

func (suite *GetOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetOrdersQuery(nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_NoFilter_ReturnsAllInCreationOrder() {
	first := suite.seedOrder("ORD-1001", "Andheri", "09:30", nil)
	partnerID := kernel.NewUUID()
	second := suite.seedOrder("ORD-1002", "Bandra", "14:00", &partnerID)

	query, err := queries.NewGetOrdersQuery(nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(first.ID(), result[0].ID)
	suite.Equal("ORD-1001", result[0].OrderNumber)
	suite.Equal("Asha", result[0].CustomerName)
	suite.Equal("9800000000", result[0].CustomerPhone)
	suite.Equal("Andheri", result[0].Area)
	suite.Equal("09:30", result[0].ScheduledFor)
	suite.Equal("pending", result[0].Status)
	suite.Nil(result[0].PartnerID)
	suite.InDelta(240.0, result[0].TotalAmount, 0.001)

	suite.Equal(second.ID(), result[1].ID)
	suite.Equal("assigned", result[1].Status)
	suite.Require().NotNil(result[1].PartnerID)
	suite.True(partnerID.IsEqual(*result[1].PartnerID))
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_StatusFilter_ReturnsMatchingOnly() {
	suite.seedOrder("ORD-2001", "Andheri", "10:00", nil)
	partnerID := kernel.NewUUID()
	suite.seedOrder("ORD-2002", "Andheri", "11:00", &partnerID)

	pending := order.Pending
	query, err := queries.NewGetOrdersQuery(&pending)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("ORD-2001", result[0].OrderNumber)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_NotConstructedQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrdersQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetOrdersQueryIsNotConstructed)
}

func (suite *GetOrdersQueryHandlerTestSuite) seedOrder(
	number, area, scheduledAt string,
	partnerID *kernel.UUID,
) *order.Order {
	scheduled, err := kernel.ParseTimeOfDay(scheduledAt)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		order.Customer{Name: "Asha", Phone: "9800000000", Address: "12 Hill Rd"},
		area,
		[]order.Item{{Name: "Dosa", Quantity: 2, Price: 120}},
		scheduled,
		240,
	)
	suite.Require().NoError(err)

	if partnerID != nil {
		suite.Require().NoError(o.Assign(*partnerID))
	}

	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
	return o
}

func TestGetOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrdersQueryHandlerTestSuite))
}
