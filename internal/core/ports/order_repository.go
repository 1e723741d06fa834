// Package ports defines the contracts between the marketplace core and its infrastructure:
// repositories bound to a unit of work, object storage and the notification publisher.
package ports

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and selected quote changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier. Missing orders yield errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the unit of work ends. Transitions that
	// touch more than one row load the order through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListOpenDueBefore returns OPEN orders whose quotation deadline lies in (now, before].
	ListOpenDueBefore(ctx context.Context, now, before time.Time) ([]*order.Order, error)

	// AddStatusChange appends a row to the order's status history.
	AddStatusChange(ctx context.Context, change order.StatusChange) error
}

// InvitationRepository stores which forwarders may quote on which orders.
type InvitationRepository interface {
	Add(ctx context.Context, invitation *order.Invitation) error
	Update(ctx context.Context, invitation *order.Invitation) error

	// Find returns the invitation for the pair or nil when there is none.
	Find(ctx context.Context, orderID, forwarderID kernel.UUID) (*order.Invitation, error)

	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Invitation, error)
}
