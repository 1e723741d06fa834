package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freightdesk/internal/adapters/out/postgres"
	"freightdesk/internal/adapters/out/postgres/orderrepo"
	"freightdesk/internal/adapters/out/postgres/pgtest"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/core/ports"
	"freightdesk/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises transactions spanning several marketplace
// repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	factory    ports.UnitOfWorkFactory
	exporterID kernel.UUID
	forwarders []kernel.UUID
	now        time.Time
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB, zerolog.Nop())
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
	suite.exporterID = suite.seed("EXPORTER")
	suite.forwarders = []kernel.UUID{suite.seed("FREIGHT_FORWARDER"), suite.seed("FREIGHT_FORWARDER")}
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) seed(companyType string) kernel.UUID {
	companyID, _, _, err := suite.database.Seed(companyType, "ADMIN")
	suite.Require().NoError(err)
	id, err := kernel.UUIDFromString(companyID)
	suite.Require().NoError(err)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), suite.exporterID, "CNSHA", "NLRTM",
		order.Cargo{Description: "solar panels", WeightKg: 5000, VolumeCbm: 30, ContainerType: "40HC"},
		suite.now.Add(72*time.Hour), suite.now)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newQuote(orderID, forwarderID kernel.UUID, price string) *quote.Quote {
	money, err := kernel.MoneyFromString(price, "USD")
	suite.Require().NoError(err)
	q, err := quote.NewQuote(kernel.NewUUID(), orderID, forwarderID,
		quote.Terms{Price: money, TransitDays: 30, ValidUntil: suite.now.Add(96 * time.Hour)}, suite.now)
	suite.Require().NoError(err)
	return q
}

// seedPendingOrder commits an order in review with one ACTIVE quote per forwarder.
func (suite *UnitOfWorkIntegrationTestSuite) seedPendingOrder() (*order.Order, []*quote.Quote) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	quotes := make([]*quote.Quote, 0, len(suite.forwarders))
	for i, forwarderID := range suite.forwarders {
		q := suite.newQuote(o.ID(), forwarderID, []string{"1000", "1100"}[i])
		suite.Require().NoError(uow.QuoteRepository().Add(ctx, q))
		quotes = append(quotes, q)
	}
	suite.Require().NoError(o.MarkPending())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o, quotes
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.InvitationRepository())
	suite.NotNil(uow1.QuoteRepository())
	suite.NotNil(uow1.DocumentRepository())
	suite.NotNil(uow1.RatingRepository())
	suite.NotNil(uow1.CompanyRepository())
	suite.NotNil(uow1.NotificationRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SelectionCommitsAllRows() {
	ctx := context.Background()
	o, quotes := suite.seedPendingOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(quotes[0].Select(suite.now))
	suite.Require().NoError(quotes[1].Reject(suite.now))
	suite.Require().NoError(locked.Close(quotes[0].ID()))
	suite.Require().NoError(uow.QuoteRepository().Update(ctx, quotes[0]))
	suite.Require().NoError(uow.QuoteRepository().Update(ctx, quotes[1]))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	selected, err := notification.New(notification.QuoteSelected, o.ID(), nil, []kernel.UUID{suite.forwarders[0]}, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.NotificationRepository().Add(ctx, selected))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	stored, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Closed, stored.Status())
	suite.True(stored.IsSelectedQuote(quotes[0].ID()))

	all, err := reader.QuoteRepository().ListByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	statuses := map[quote.Status]int{}
	for _, q := range all {
		statuses[q.Status()]++
	}
	suite.Equal(map[quote.Status]int{quote.Selected: 1, quote.Rejected: 1}, statuses)

	unsent, err := reader.NotificationRepository().ListUnsent(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(unsent, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConflictRollsBackEveryRow() {
	ctx := context.Background()
	o, quotes := suite.seedPendingOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(quotes[0].Select(suite.now))
	suite.Require().NoError(quotes[1].Select(suite.now))
	suite.Require().NoError(uow.QuoteRepository().Update(ctx, quotes[0]))
	err := uow.QuoteRepository().Update(ctx, quotes[1])
	suite.Equal(errs.KindConflict, errs.KindOf(err))
	suite.Require().NoError(uow.Rollback(ctx))

	count, err := suite.factory.Create().QuoteRepository().CountActive(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(2), count, "Rolled back selection must leave both quotes ACTIVE")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetForUpdateHoldsRowLock() {
	ctx := context.Background()
	o, _ := suite.seedPendingOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	_, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	err = suite.database.DB.Transaction(func(tx *gorm.DB) error {
		if lockErr := tx.Exec("SET LOCAL lock_timeout = '200ms'").Error; lockErr != nil {
			return lockErr
		}
		_, getErr := orderrepo.NewGormOrderRepository(tx).GetForUpdate(ctx, o.ID())
		return getErr
	})
	suite.Require().Error(err, "A second transaction must wait for the order lock")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()

	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Reference(), stored.Reference())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
