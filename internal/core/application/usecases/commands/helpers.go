package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/core/domain/services"
	"freightdesk/internal/core/ports"

	"github.com/rs/zerolog"
)

// afterCommitTimeout bounds the best-effort work that follows a commit.
const afterCommitTimeout = 10 * time.Second

// afterCommit detaches ctx from the request's cancellation and deadline, so follow-up work
// of an already committed transition gets its own time budget.
func afterCommit(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), afterCommitTimeout)
}

// lockQuote loads the quote's order under a row lock and then re-reads the quote, so the
// quote cannot change between the read and the transition.
func lockQuote(ctx context.Context, uow UoW, quoteID kernel.UUID) (*order.Order, *quote.Quote, error) {
	quoteRepo := uow.QuoteRepository()
	q, err := quoteRepo.Get(ctx, quoteID)
	if err != nil {
		return nil, nil, err
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, q.OrderID())
	if err != nil {
		return nil, nil, err
	}

	q, err = quoteRepo.Get(ctx, quoteID)
	if err != nil {
		return nil, nil, err
	}
	return o, q, nil
}

// selectedQuote returns the order's selected quote or nil.
func selectedQuote(ctx context.Context, quotes ports.QuoteRepository, o *order.Order) (*quote.Quote, error) {
	id := o.SelectedQuote()
	if id == nil {
		return nil, nil
	}
	return quotes.Get(ctx, *id)
}

// runCompensations deletes objects whose rows are already gone. Failures leave orphaned
// objects behind and are only logged.
func runCompensations(ctx context.Context, storage ports.ObjectStorage, log zerolog.Logger, compensations []services.Compensation) {
	if len(compensations) == 0 {
		return
	}
	ctx, cancel := afterCommit(ctx)
	defer cancel()

	for _, c := range compensations {
		if err := storage.Delete(ctx, c.ObjectPath); err != nil {
			log.Warn().Err(err).Str("object_path", c.ObjectPath).Msg("orphaned invoice object not deleted")
		}
	}
}
