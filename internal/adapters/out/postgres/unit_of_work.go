// Package postgres provides the GORM-based Unit of Work that every marketplace command runs
// in. Each multi-row transition (quote selection, status change, invoice upload) writes all
// of its rows through repositories bound to one transaction, so either every row changes or
// none does.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... mutate aggregates, write them through the repositories ...
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction, which the deferred
// call ignores.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns at most one transaction and must not be shared
//     between goroutines
//   - Transitions that read then write the order take its row lock through
//     OrderRepository().GetForUpdate
//   - Partial unique indexes back the "one SELECTED quote" and "one FINAL_INVOICE"
//     invariants; their violations surface as errs.ConflictError
package postgres

import (
	"context"

	"freightdesk/internal/adapters/out/postgres/companyrepo"
	"freightdesk/internal/adapters/out/postgres/documentrepo"
	"freightdesk/internal/adapters/out/postgres/notificationrepo"
	"freightdesk/internal/adapters/out/postgres/orderrepo"
	"freightdesk/internal/adapters/out/postgres/quoterepo"
	"freightdesk/internal/adapters/out/postgres/ratingrepo"
	"freightdesk/internal/core/ports"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, log zerolog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, log: log}
}

// Create produces a new UnitOfWork instance with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db, log: f.log}
}

// GormUnitOfWork coordinates one database transaction across the marketplace repositories.
type GormUnitOfWork struct {
	db  *gorm.DB
	tx  *gorm.DB
	log zerolog.Logger
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction, or the plain connection before Begin.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) InvitationRepository() ports.InvitationRepository {
	return orderrepo.NewGormInvitationRepository(uow.conn())
}

func (uow *GormUnitOfWork) QuoteRepository() ports.QuoteRepository {
	return quoterepo.NewGormQuoteRepository(uow.conn())
}

func (uow *GormUnitOfWork) DocumentRepository() ports.DocumentRepository {
	return documentrepo.NewGormDocumentRepository(uow.conn())
}

func (uow *GormUnitOfWork) RatingRepository() ports.RatingRepository {
	return ratingrepo.NewGormRatingRepository(uow.conn())
}

func (uow *GormUnitOfWork) CompanyRepository() ports.CompanyRepository {
	return companyrepo.NewGormCompanyRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn(), uow.log)
}
