package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AssignmentRepositoryIntegrationTestSuite provides integration tests for the
// assignment ledger using PostgreSQL containers.
type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *assignmentrepo.GormAssignmentRepository
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&assignmentrepo.AssignmentDTO{}))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE assignments").Error)

	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.db)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddAndList_RoundTrips() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	partnerID := kernel.NewUUID()
	success, err := assignment.NewSuccessEntry(kernel.NewUUID(), partnerID, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, success))

	failed, err := assignment.NewFailedEntry(
		kernel.NewUUID(), nil, assignment.ReasonNoEligiblePartners, now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, failed))

	entries, err := suite.repository.List(ctx, time.Time{}, time.Time{})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)

	// Newest first
	suite.Equal(failed.ID(), entries[0].ID())
	suite.Equal(assignment.Failed, entries[0].Status())
	suite.Equal(assignment.ReasonNoEligiblePartners, entries[0].Reason())
	suite.Nil(entries[0].PartnerID())

	suite.Equal(success.ID(), entries[1].ID())
	suite.Equal(assignment.Success, entries[1].Status())
	suite.Require().NotNil(entries[1].PartnerID())
	suite.True(partnerID.IsEqual(*entries[1].PartnerID()))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestList_HalfOpenTimeWindow() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	for i := 0; i < 3; i++ {
		entry, err := assignment.NewSuccessEntry(
			kernel.NewUUID(), kernel.NewUUID(), base.Add(time.Duration(i)*time.Hour))
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, entry))
	}

	// [base+1h, base+2h) keeps only the middle entry
	entries, err := suite.repository.List(ctx, base.Add(time.Hour), base.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(base.Add(time.Hour), entries[0].Timestamp().UTC())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestCountByStatus_CountsTotalsAndSuccesses() {
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 2; i++ {
		entry, err := assignment.NewSuccessEntry(kernel.NewUUID(), kernel.NewUUID(), now)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, entry))
	}

	failed, err := assignment.NewFailedEntry(kernel.NewUUID(), nil, assignment.ReasonPartnerAtCapacity, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, failed))

	total, success, err := suite.repository.CountByStatus(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Equal(int64(2), success)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestCountByStatus_EmptyLedger() {
	total, success, err := suite.repository.CountByStatus(context.Background())
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.Equal(int64(0), success)
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}
