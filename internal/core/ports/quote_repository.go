package ports

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for quotes and their amendment trail.
type QuoteRepository interface {
	Add(ctx context.Context, q *quote.Quote) error
	Update(ctx context.Context, q *quote.Quote) error

	// Get retrieves a quote by identifier. Missing quotes yield errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// ListByOrder returns every quote ever placed on the order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*quote.Quote, error)

	// FindActive returns the forwarder's ACTIVE quote on the order or nil.
	FindActive(ctx context.Context, orderID, forwarderID kernel.UUID) (*quote.Quote, error)

	// CountActive counts ACTIVE quotes on the order.
	CountActive(ctx context.Context, orderID kernel.UUID) (int64, error)

	// ListLapsed returns ACTIVE quotes with valid_until <= now on OPEN or PENDING orders.
	ListLapsed(ctx context.Context, now time.Time, limit int) ([]*quote.Quote, error)

	// AddAmendment appends a price amendment. Amendments are never changed.
	AddAmendment(ctx context.Context, amendment quote.Amendment) error
}
