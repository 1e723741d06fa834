package quoterepo_test

import (
	"context"
	"testing"
	"time"

	"freightdesk/internal/adapters/out/postgres/orderrepo"
	"freightdesk/internal/adapters/out/postgres/pgtest"
	"freightdesk/internal/adapters/out/postgres/quoterepo"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QuoteRepositoryIntegrationTestSuite struct {
	suite.Suite
	database    *pgtest.Database
	repository  *quoterepo.GormQuoteRepository
	orders      *orderrepo.GormOrderRepository
	exporterID  kernel.UUID
	forwarderID kernel.UUID
	now         time.Time
}

func (suite *QuoteRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *QuoteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.exporterID = suite.seed("EXPORTER")
	suite.forwarderID = suite.seed("FREIGHT_FORWARDER")
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
	suite.repository = quoterepo.NewGormQuoteRepository(suite.database.DB)
	suite.orders = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *QuoteRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QuoteRepositoryIntegrationTestSuite) seed(companyType string) kernel.UUID {
	companyID, _, _, err := suite.database.Seed(companyType, "ADMIN")
	suite.Require().NoError(err)
	id, err := kernel.UUIDFromString(companyID)
	suite.Require().NoError(err)
	return id
}

func (suite *QuoteRepositoryIntegrationTestSuite) addOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), suite.exporterID, "CNSHA", "NLRTM",
		order.Cargo{Description: "textiles", WeightKg: 800}, suite.now.Add(72*time.Hour), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *QuoteRepositoryIntegrationTestSuite) newQuote(orderID, forwarderID kernel.UUID, price string, validFor time.Duration) *quote.Quote {
	money, err := kernel.MoneyFromString(price, "USD")
	suite.Require().NoError(err)
	q, err := quote.NewQuote(kernel.NewUUID(), orderID, forwarderID, quote.Terms{
		Price:       money,
		TransitDays: 21,
		ValidUntil:  suite.now.Add(validFor),
		Notes:       "door to port",
	}, suite.now)
	suite.Require().NoError(err)
	return q
}

func (suite *QuoteRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	o := suite.addOrder()
	original := suite.newQuote(o.ID(), suite.forwarderID, "1250.50", 48*time.Hour)

	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.True(restored.Price().Equal(original.Price()))
	suite.Equal(quote.Active, restored.Status())
	suite.Equal(21, restored.Terms().TransitDays)
	suite.Equal("door to port", restored.Terms().Notes)
	suite.True(restored.BelongsTo(o.ID()))
	suite.True(restored.IsOwnedBy(suite.forwarderID))
}

func (suite *QuoteRepositoryIntegrationTestSuite) TestGet_Missing_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QuoteRepositoryIntegrationTestSuite) TestAdd_SecondActiveQuoteBySameForwarder_Conflict() {
	ctx := context.Background()
	o := suite.addOrder()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newQuote(o.ID(), suite.forwarderID, "100", time.Hour)))

	err := suite.repository.Add(ctx, suite.newQuote(o.ID(), suite.forwarderID, "90", time.Hour))

	suite.Equal(errs.KindConflict, errs.KindOf(err))
}

func (suite *QuoteRepositoryIntegrationTestSuite) TestUpdate_SecondSelectedQuote_Conflict() {
	ctx := context.Background()
	o := suite.addOrder()
	first := suite.newQuote(o.ID(), suite.forwarderID, "100", time.Hour)
	second := suite.newQuote(o.ID(), suite.seed("FREIGHT_FORWARDER"), "110", time.Hour)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.Require().NoError(first.Select(suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, first))
	suite.Require().NoError(second.Select(suite.now))
	err := suite.repository.Update(ctx, second)

	suite.Equal(errs.KindConflict, errs.KindOf(err))
}

func (suite *QuoteRepositoryIntegrationTestSuite) TestFindActiveAndCount() {
	ctx := context.Background()
	o := suite.addOrder()

	missing, err := suite.repository.FindActive(ctx, o.ID(), suite.forwarderID)
	suite.Require().NoError(err)
	suite.Nil(missing)

	q := suite.newQuote(o.ID(), suite.forwarderID, "100", time.Hour)
	suite.Require().NoError(suite.repository.Add(ctx, q))
	cancelled := suite.newQuote(o.ID(), suite.seed("FREIGHT_FORWARDER"), "120", time.Hour)
	suite.Require().NoError(cancelled.Cancel(suite.now))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	found, err := suite.repository.FindActive(ctx, o.ID(), suite.forwarderID)
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(q.ID()))

	count, err := suite.repository.CountActive(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	all, err := suite.repository.ListByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *QuoteRepositoryIntegrationTestSuite) TestListLapsed_OnlyActiveOnLiveOrders() {
	ctx := context.Background()
	live := suite.addOrder()
	lapsed := suite.newQuote(live.ID(), suite.forwarderID, "100", time.Hour)
	fresh := suite.newQuote(live.ID(), suite.seed("FREIGHT_FORWARDER"), "100", 48*time.Hour)
	suite.Require().NoError(suite.repository.Add(ctx, lapsed))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	result, err := suite.repository.ListLapsed(ctx, suite.now.Add(2*time.Hour), 10)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID().IsEqual(lapsed.ID()))
}

func (suite *QuoteRepositoryIntegrationTestSuite) TestAddAmendment() {
	ctx := context.Background()
	o := suite.addOrder()
	q := suite.newQuote(o.ID(), suite.forwarderID, "100", 48*time.Hour)
	suite.Require().NoError(suite.repository.Add(ctx, q))

	terms := q.Terms()
	terms.Price, _ = kernel.MoneyFromString("95", "USD")
	amendment, err := q.Amend(terms, "fuel surcharge removed", suite.now)
	suite.Require().NoError(err)
	suite.Require().NotNil(amendment)

	suite.Require().NoError(suite.repository.Update(ctx, q))
	suite.Require().NoError(suite.repository.AddAmendment(ctx, *amendment))

	var reason string
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT reason FROM quote_amendments WHERE quote_id = ?", q.ID().Bytes()).Row().Scan(&reason))
	suite.Equal("fuel surcharge removed", reason)
}

func TestQuoteRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteRepositoryIntegrationTestSuite))
}
