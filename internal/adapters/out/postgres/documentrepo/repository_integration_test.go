package documentrepo_test

import (
	"context"
	"testing"
	"time"

	"freightdesk/internal/adapters/out/postgres/documentrepo"
	"freightdesk/internal/adapters/out/postgres/orderrepo"
	"freightdesk/internal/adapters/out/postgres/pgtest"
	"freightdesk/internal/adapters/out/postgres/quoterepo"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type DocumentRepositoryIntegrationTestSuite struct {
	suite.Suite
	database    *pgtest.Database
	repository  *documentrepo.GormDocumentRepository
	order       *order.Order
	quote       *quote.Quote
	forwarderID kernel.UUID
	now         time.Time
}

func (suite *DocumentRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *DocumentRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
	suite.repository = documentrepo.NewGormDocumentRepository(suite.database.DB)

	exporterID := suite.seed("EXPORTER")
	suite.forwarderID = suite.seed("FREIGHT_FORWARDER")

	o, err := order.NewOrder(kernel.NewUUID(), exporterID, "CNSHA", "NLRTM",
		order.Cargo{Description: "furniture", WeightKg: 300}, suite.now.Add(time.Hour), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.database.DB).Add(ctx, o))
	suite.order = o
	suite.quote = suite.addQuote(suite.forwarderID)
}

func (suite *DocumentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *DocumentRepositoryIntegrationTestSuite) seed(companyType string) kernel.UUID {
	companyID, _, _, err := suite.database.Seed(companyType, "ADMIN")
	suite.Require().NoError(err)
	id, err := kernel.UUIDFromString(companyID)
	suite.Require().NoError(err)
	return id
}

func (suite *DocumentRepositoryIntegrationTestSuite) addQuote(forwarderID kernel.UUID) *quote.Quote {
	price, err := kernel.MoneyFromString("900", "EUR")
	suite.Require().NoError(err)
	q, err := quote.NewQuote(kernel.NewUUID(), suite.order.ID(), forwarderID,
		quote.Terms{Price: price, TransitDays: 14, ValidUntil: suite.now.Add(24 * time.Hour)}, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(quoterepo.NewGormQuoteRepository(suite.database.DB).Add(context.Background(), q))
	return q
}

func (suite *DocumentRepositoryIntegrationTestSuite) newInvoice(q *quote.Quote, name string) *invoice.Document {
	file := invoice.File{Name: name, ContentType: "application/pdf", Size: 2048}
	ext, err := file.Extension()
	suite.Require().NoError(err)
	doc, err := invoice.NewFinalInvoice(kernel.NewUUID(), q.ID(),
		invoice.Path(suite.order.Reference(), q.ID(), ext), file, kernel.NewUUID(), suite.now)
	suite.Require().NoError(err)
	return doc
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestAddAndFind_RoundTripsMetadata() {
	ctx := context.Background()
	doc := suite.newInvoice(suite.quote, "invoice.pdf")

	suite.Require().NoError(suite.repository.Add(ctx, doc))

	found, err := suite.repository.FindFinalInvoice(ctx, suite.quote.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.True(found.ID().IsEqual(doc.ID()))
	suite.Equal(doc.Path(), found.Path())
	suite.Equal(invoice.TypeFinalInvoice, found.Metadata().Type)
	suite.Equal("invoice.pdf", found.Metadata().FileName)
	suite.Equal(int64(2048), found.Metadata().SizeBytes)
	suite.False(found.IsLocked())
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestFindFinalInvoice_Missing_ReturnsNil() {
	found, err := suite.repository.FindFinalInvoice(context.Background(), suite.quote.ID())

	suite.Require().NoError(err)
	suite.Nil(found)
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestAdd_SecondFinalInvoiceForQuote_Conflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newInvoice(suite.quote, "a.pdf")))

	err := suite.repository.Add(ctx, suite.newInvoice(suite.quote, "b.pdf"))

	suite.Equal(errs.KindConflict, errs.KindOf(err))
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestUpdate_AcceptLocksAndStaleUnlockedCopyConflicts() {
	ctx := context.Background()
	doc := suite.newInvoice(suite.quote, "invoice.pdf")
	suite.Require().NoError(suite.repository.Add(ctx, doc))
	stale, err := suite.repository.FindFinalInvoice(ctx, suite.quote.ID())
	suite.Require().NoError(err)

	changed, err := doc.Accept(kernel.NewUUID(), suite.now)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(suite.repository.Update(ctx, doc))

	v2 := invoice.File{Name: "v2.pdf", ContentType: "application/pdf", Size: 10}
	suite.Require().NoError(stale.Replace(stale.Path(), v2, kernel.NewUUID(), suite.now))
	err = suite.repository.Update(ctx, stale)
	suite.Equal(errs.KindConflict, errs.KindOf(err))

	found, err := suite.repository.FindFinalInvoice(ctx, suite.quote.ID())
	suite.Require().NoError(err)
	suite.True(found.IsLocked())
	suite.NotNil(found.Metadata().AcceptedAt)
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestListByOrderAndDelete() {
	ctx := context.Background()
	other := suite.addQuote(suite.seed("FREIGHT_FORWARDER"))
	first := suite.newInvoice(suite.quote, "a.pdf")
	second := suite.newInvoice(other, "b.png")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	docs, err := suite.repository.ListFinalInvoicesByOrder(ctx, suite.order.ID())
	suite.Require().NoError(err)
	suite.Len(docs, 2)

	suite.Require().NoError(suite.repository.Delete(ctx, []kernel.UUID{first.ID()}))
	suite.Require().NoError(suite.repository.Delete(ctx, nil))

	docs, err = suite.repository.ListFinalInvoicesByOrder(ctx, suite.order.ID())
	suite.Require().NoError(err)
	suite.Require().Len(docs, 1)
	suite.True(docs[0].ID().IsEqual(second.ID()))
}

func TestDocumentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentRepositoryIntegrationTestSuite))
}
