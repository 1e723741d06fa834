// Package commands contains business operations that modify marketplace state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, a domain
// service call over the loaded snapshot, persistence, and post-commit side effects
// (notifications, object cleanup) that never fail the command.
package commands

import (
	"context"

	"freightdesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	InvitationRepoFactory interface {
		InvitationRepository() ports.InvitationRepository
	}

	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	DocumentRepoFactory interface {
		DocumentRepository() ports.DocumentRepository
	}

	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	CompanyRepoFactory interface {
		CompanyRepository() ports.CompanyRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// UoW spans every aggregate a caller-driven transition can touch.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   quotes, err := uow.QuoteRepository().ListByOrder(ctx, orderID)
	//   // ... apply the domain service, write the rows
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		InvitationRepoFactory
		QuoteRepoFactory
		DocumentRepoFactory
		RatingRepoFactory
		CompanyRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// QuoteUoW is used by the quote expiry sweep.
	QuoteUoW interface {
		TxManager
		QuoteRepoFactory
	}

	QuoteUoWFactory interface {
		Create() QuoteUoW
	}

	// NotificationUoW is used by the outbox writers and the email sweep.
	NotificationUoW interface {
		TxManager
		OrderRepoFactory
		InvitationRepoFactory
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
