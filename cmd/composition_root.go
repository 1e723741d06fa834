package cmd

import (
	httpadapter "freightdesk/internal/adapters/in/http"
	"freightdesk/internal/adapters/out/postgres"
	"freightdesk/internal/adapters/out/postgres/companyrepo"
	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/application/usecases/queries"
	"freightdesk/internal/core/ports"
	"freightdesk/internal/jobs"
	"freightdesk/internal/pkg/logging"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	storage    ports.ObjectStorage
	publisher  ports.NotificationPublisher
	logger     zerolog.Logger
	notifier   *commands.NotificationDispatcher
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	storage ports.ObjectStorage,
	publisher ports.NotificationPublisher,
	logger zerolog.Logger,
) *CompositionRoot {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logging.Component(logger, "postgres")),
		storage:    storage,
		publisher:  publisher,
		logger:     logger,
	}
	c.notifier = commands.NewNotificationDispatcher(c.notificationUoWFactory(), publisher,
		logging.Component(logger, "notification_dispatcher"))
	return c
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) quoteUoWFactory() commands.QuoteUoWFactory {
	return FuncQuoteUoWFactory(func() commands.QuoteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateResolveActorQueryHandler() queries.ResolveActorQueryHandler {
	return queries.NewResolveActorQueryHandler(companyrepo.NewGormCompanyRepository(c.gormDB))
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.commandUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateInviteForwarderCommandHandler() *commands.InviteForwarderCommandHandler {
	h := commands.NewInviteForwarderCommandHandler(c.commandUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRespondInvitationCommandHandler() *commands.RespondInvitationCommandHandler {
	h := commands.NewRespondInvitationCommandHandler(c.commandUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateReviewQuotesCommandHandler() *commands.ReviewQuotesCommandHandler {
	h := commands.NewReviewQuotesCommandHandler(c.commandUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateSubmitQuoteCommandHandler() *commands.SubmitQuoteCommandHandler {
	h := commands.NewSubmitQuoteCommandHandler(c.commandUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateSelectQuoteCommandHandler() *commands.SelectQuoteCommandHandler {
	h := commands.NewSelectQuoteCommandHandler(c.commandUoWFactory(), c.notifier)
	return &h
}

func (c *CompositionRoot) CreateAmendQuoteCommandHandler() *commands.AmendQuoteCommandHandler {
	h := commands.NewAmendQuoteCommandHandler(c.commandUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCancelQuoteCommandHandler() *commands.CancelQuoteCommandHandler {
	h := commands.NewCancelQuoteCommandHandler(c.commandUoWFactory(), c.notifier)
	return &h
}

func (c *CompositionRoot) CreateListQuoteAmendmentsQueryHandler() queries.ListQuoteAmendmentsQueryHandler {
	return queries.NewListQuoteAmendmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.commandUoWFactory(), c.storage,
		logging.Component(c.logger, "order_status"))
	return &h
}

func (c *CompositionRoot) CreateUploadInvoiceCommandHandler() *commands.UploadInvoiceCommandHandler {
	h := commands.NewUploadInvoiceCommandHandler(c.commandUoWFactory(), c.storage)
	return &h
}

func (c *CompositionRoot) CreateAcceptInvoiceCommandHandler() *commands.AcceptInvoiceCommandHandler {
	h := commands.NewAcceptInvoiceCommandHandler(c.commandUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRateCompanyCommandHandler() *commands.RateCompanyCommandHandler {
	h := commands.NewRateCompanyCommandHandler(c.commandUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateSendPendingNotificationsCommandHandler() *commands.SendPendingNotificationsCommandHandler {
	h := commands.NewSendPendingNotificationsCommandHandler(c.notificationUoWFactory(), c.publisher,
		logging.Component(c.logger, "notification_sender"))
	return &h
}

func (c *CompositionRoot) CreateEnqueueDeadlineRemindersCommandHandler() *commands.EnqueueDeadlineRemindersCommandHandler {
	h := commands.NewEnqueueDeadlineRemindersCommandHandler(c.notificationUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateExpireQuotesCommandHandler() *commands.ExpireQuotesCommandHandler {
	h := commands.NewExpireQuotesCommandHandler(c.quoteUoWFactory())
	return &h
}

// Application wires every use case the HTTP adapter serves.
func (c *CompositionRoot) Application() httpadapter.Application {
	return httpadapter.Application{
		ResolveActor:      c.CreateResolveActorQueryHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		GetOrderDetails:   c.CreateGetOrderDetailsQueryHandler(),
		InviteForwarder:   c.CreateInviteForwarderCommandHandler(),
		RespondInvitation: c.CreateRespondInvitationCommandHandler(),
		ReviewQuotes:      c.CreateReviewQuotesCommandHandler(),
		SubmitQuote:       c.CreateSubmitQuoteCommandHandler(),
		SelectQuote:       c.CreateSelectQuoteCommandHandler(),
		AmendQuote:        c.CreateAmendQuoteCommandHandler(),
		CancelQuote:       c.CreateCancelQuoteCommandHandler(),
		ListAmendments:    c.CreateListQuoteAmendmentsQueryHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		UploadInvoice:     c.CreateUploadInvoiceCommandHandler(),
		AcceptInvoice:     c.CreateAcceptInvoiceCommandHandler(),
		Ratings:           c.CreateRateCompanyCommandHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSendPendingNotificationsCommandHandler(),
		c.CreateEnqueueDeadlineRemindersCommandHandler(),
		c.CreateExpireQuotesCommandHandler(),
		jobs.Schedule{
			EmailSweep:     c.config.EmailSweepCron,
			EmailBatchSize: c.config.EmailSweepBatchSize,
			Reminders:      c.config.ReminderCron,
			QuoteExpiry:    c.config.QuoteExpiryCron,
			Timeout:        c.config.JobTimeout,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncQuoteUoWFactory func() commands.QuoteUoW

func (f FuncQuoteUoWFactory) Create() commands.QuoteUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
