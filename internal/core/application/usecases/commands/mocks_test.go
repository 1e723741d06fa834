package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/core/domain/model/rating"
	"freightdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// detachedCtx matches the context post-commit work runs under: live, with its own deadline.
var detachedCtx = mock.MatchedBy(func(ctx context.Context) bool {
	_, hasDeadline := ctx.Deadline()
	return hasDeadline && ctx.Err() == nil
})

type OrderRepo struct{ mock.Mock }

func (m *OrderRepo) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepo) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepo) ListOpenDueBefore(ctx context.Context, now, before time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *OrderRepo) AddStatusChange(ctx context.Context, change order.StatusChange) error {
	return m.Called(ctx, change).Error(0)
}

type InvitationRepo struct{ mock.Mock }

func (m *InvitationRepo) Add(ctx context.Context, inv *order.Invitation) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *InvitationRepo) Update(ctx context.Context, inv *order.Invitation) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *InvitationRepo) Find(ctx context.Context, orderID, forwarderID kernel.UUID) (*order.Invitation, error) {
	args := m.Called(ctx, orderID, forwarderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Invitation), args.Error(1)
}

func (m *InvitationRepo) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Invitation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Invitation), args.Error(1)
}

type QuoteRepo struct{ mock.Mock }

func (m *QuoteRepo) Add(ctx context.Context, q *quote.Quote) error {
	return m.Called(ctx, q).Error(0)
}

func (m *QuoteRepo) Update(ctx context.Context, q *quote.Quote) error {
	return m.Called(ctx, q).Error(0)
}

func (m *QuoteRepo) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *QuoteRepo) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*quote.Quote, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*quote.Quote), args.Error(1)
}

func (m *QuoteRepo) FindActive(ctx context.Context, orderID, forwarderID kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, orderID, forwarderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *QuoteRepo) CountActive(ctx context.Context, orderID kernel.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *QuoteRepo) ListLapsed(ctx context.Context, now time.Time, limit int) ([]*quote.Quote, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*quote.Quote), args.Error(1)
}

func (m *QuoteRepo) AddAmendment(ctx context.Context, amendment quote.Amendment) error {
	return m.Called(ctx, amendment).Error(0)
}

type DocumentRepo struct{ mock.Mock }

func (m *DocumentRepo) Add(ctx context.Context, doc *invoice.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *DocumentRepo) Update(ctx context.Context, doc *invoice.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *DocumentRepo) FindFinalInvoice(ctx context.Context, quoteID kernel.UUID) (*invoice.Document, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Document), args.Error(1)
}

func (m *DocumentRepo) ListFinalInvoicesByOrder(ctx context.Context, orderID kernel.UUID) ([]*invoice.Document, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoice.Document), args.Error(1)
}

func (m *DocumentRepo) Delete(ctx context.Context, ids []kernel.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

type RatingRepo struct{ mock.Mock }

func (m *RatingRepo) Add(ctx context.Context, r *rating.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RatingRepo) Exists(ctx context.Context, orderID, raterID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID, raterID)
	return args.Bool(0), args.Error(1)
}

type CompanyRepo struct{ mock.Mock }

func (m *CompanyRepo) GetActor(ctx context.Context, userID, companyID kernel.UUID) (company.Actor, error) {
	args := m.Called(ctx, userID, companyID)
	return args.Get(0).(company.Actor), args.Error(1)
}

func (m *CompanyRepo) GetType(ctx context.Context, companyID kernel.UUID) (company.Type, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(company.Type), args.Error(1)
}

type NotificationRepo struct{ mock.Mock }

func (m *NotificationRepo) Add(ctx context.Context, notifications ...notification.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

func (m *NotificationRepo) AddOnce(ctx context.Context, n notification.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepo) ListUnsent(ctx context.Context, limit int) ([]notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *NotificationRepo) MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

// UnitOfWork satisfies every unit of work flavour used by the handlers.
type UnitOfWork struct{ mock.Mock }

func (m *UnitOfWork) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *UnitOfWork) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *UnitOfWork) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *UnitOfWork) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *UnitOfWork) InvitationRepository() ports.InvitationRepository {
	return m.Called().Get(0).(ports.InvitationRepository)
}

func (m *UnitOfWork) QuoteRepository() ports.QuoteRepository {
	return m.Called().Get(0).(ports.QuoteRepository)
}

func (m *UnitOfWork) DocumentRepository() ports.DocumentRepository {
	return m.Called().Get(0).(ports.DocumentRepository)
}

func (m *UnitOfWork) RatingRepository() ports.RatingRepository {
	return m.Called().Get(0).(ports.RatingRepository)
}

func (m *UnitOfWork) CompanyRepository() ports.CompanyRepository {
	return m.Called().Get(0).(ports.CompanyRepository)
}

func (m *UnitOfWork) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}

type UoWFactory struct{ mock.Mock }

func (m *UoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type QuoteUoWFactory struct{ mock.Mock }

func (m *QuoteUoWFactory) Create() commands.QuoteUoW {
	return m.Called().Get(0).(commands.QuoteUoW)
}

type NotificationUoWFactory struct{ mock.Mock }

func (m *NotificationUoWFactory) Create() commands.NotificationUoW {
	return m.Called().Get(0).(commands.NotificationUoW)
}

type Storage struct{ mock.Mock }

func (m *Storage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	return m.Called(ctx, key, contentType, body, size).Error(0)
}

func (m *Storage) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *Storage) PublicURL(key string) string {
	return m.Called(key).String(0)
}

type Publisher struct{ mock.Mock }

func (m *Publisher) Publish(ctx context.Context, n notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type Notifier struct{ mock.Mock }

func (m *Notifier) Dispatch(ctx context.Context, notifications ...notification.Notification) {
	m.Called(ctx, notifications)
}

// repos bundles the mocked repositories behind one UnitOfWork.
type repos struct {
	uow           *UnitOfWork
	factory       *UoWFactory
	orders        *OrderRepo
	invitations   *InvitationRepo
	quotes        *QuoteRepo
	documents     *DocumentRepo
	ratings       *RatingRepo
	companies     *CompanyRepo
	notifications *NotificationRepo
}

// newRepos wires every repository accessor. Accessors may be called any number of times;
// tests pin the order of the calls that matter with mock.InOrder.
func newRepos() *repos {
	r := &repos{
		uow:           new(UnitOfWork),
		factory:       new(UoWFactory),
		orders:        new(OrderRepo),
		invitations:   new(InvitationRepo),
		quotes:        new(QuoteRepo),
		documents:     new(DocumentRepo),
		ratings:       new(RatingRepo),
		companies:     new(CompanyRepo),
		notifications: new(NotificationRepo),
	}
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("InvitationRepository").Return(r.invitations).Maybe()
	r.uow.On("QuoteRepository").Return(r.quotes).Maybe()
	r.uow.On("DocumentRepository").Return(r.documents).Maybe()
	r.uow.On("RatingRepository").Return(r.ratings).Maybe()
	r.uow.On("CompanyRepository").Return(r.companies).Maybe()
	r.uow.On("NotificationRepository").Return(r.notifications).Maybe()
	return r
}

func (r *repos) assertExpectations(t *testing.T) {
	t.Helper()
	r.factory.AssertExpectations(t)
	r.uow.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.invitations.AssertExpectations(t)
	r.quotes.AssertExpectations(t)
	r.documents.AssertExpectations(t)
	r.ratings.AssertExpectations(t)
	r.companies.AssertExpectations(t)
	r.notifications.AssertExpectations(t)
}

func newActor(t *testing.T, companyID kernel.UUID, role company.Role, companyType company.Type) company.Actor {
	t.Helper()
	a, err := company.NewActor(kernel.NewUUID(), companyID, kernel.NewUUID(), role, companyType)
	require.NoError(t, err)
	return a
}

func exporterAdmin(t *testing.T, exporterID kernel.UUID) company.Actor {
	return newActor(t, exporterID, company.RoleAdmin, company.TypeExporter)
}

func exporterMember(t *testing.T, exporterID kernel.UUID) company.Actor {
	return newActor(t, exporterID, company.RoleMember, company.TypeExporter)
}

func forwarder(t *testing.T, forwarderID kernel.UUID) company.Actor {
	return newActor(t, forwarderID, company.RoleMember, company.TypeFreightForwarder)
}

func orderIn(t *testing.T, exporterID kernel.UUID, status order.Status, selected *kernel.UUID) *order.Order {
	t.Helper()
	now := time.Now()
	o, err := order.RestoreOrder(kernel.NewUUID(), "FD-20261017-ABCDEF", exporterID, "CNSHA", "NLRTM",
		order.Cargo{Description: "machine parts", WeightKg: 1200}, status, selected,
		now.Add(72*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func terms(t *testing.T, amount string) quote.Terms {
	t.Helper()
	price, err := kernel.MoneyFromString(amount, "USD")
	require.NoError(t, err)
	return quote.Terms{Price: price, TransitDays: 21, ValidUntil: time.Now().Add(10 * 24 * time.Hour)}
}

func quoteIn(t *testing.T, orderID, forwarderID kernel.UUID, status quote.Status) *quote.Quote {
	t.Helper()
	now := time.Now()
	q, err := quote.RestoreQuote(kernel.NewUUID(), orderID, forwarderID, terms(t, "1000"), status, now, now)
	require.NoError(t, err)
	return q
}

func invitationFor(t *testing.T, orderID, forwarderID kernel.UUID, status order.InvitationStatus) *order.Invitation {
	t.Helper()
	inv, err := order.RestoreInvitation(orderID, forwarderID, status, time.Now())
	require.NoError(t, err)
	return inv
}

func finalInvoice(t *testing.T, quoteID kernel.UUID, path string, locked bool) *invoice.Document {
	t.Helper()
	doc, err := invoice.NewFinalInvoice(kernel.NewUUID(), quoteID, path,
		invoice.File{Name: "invoice.pdf", Size: 100}, kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	if locked {
		_, err = doc.Accept(kernel.NewUUID(), time.Now())
		require.NoError(t, err)
	}
	return doc
}
