package commands

import (
	"context"
	"fmt"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/core/domain/services"
)

// SelectQuoteCommandHandler closes an order on the chosen quote.
//
// The order row is locked for the whole transaction, so two concurrent selections on the same
// order serialize and the second one sees a CLOSED order. The partial unique index on
// SELECTED quotes backs the same rule in the schema.
type SelectQuoteCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	selector   services.QuoteSelector
}

func NewSelectQuoteCommandHandler(uowFactory UoWFactory, notifier Notifier) SelectQuoteCommandHandler {
	return SelectQuoteCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		selector:   services.NewQuoteSelector(),
	}
}

// Handle selects the quote, rejects every other ACTIVE quote and closes the order in one
// transaction. The stored rows are re-read before commit; anything other than exactly one
// SELECTED quote aborts the transaction. Notifications go out only after commit.
func (h *SelectQuoteCommandHandler) Handle(ctx context.Context, cmd SelectQuoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	quoteRepo := uow.QuoteRepository()
	quotes, err := quoteRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	if !containsQuote(quotes, cmd.QuoteID()) {
		// Unknown IDs stay NotFound; a quote of another order reaches the selector and is
		// rejected there as InvalidState.
		foreign, err := quoteRepo.Get(ctx, cmd.QuoteID())
		if err != nil {
			return err
		}
		quotes = append(quotes, foreign)
	}

	now := time.Now()
	from := o.Status()
	selection, err := h.selector.Select(cmd.Actor(), o, cmd.QuoteID(), quotes, now)
	if err != nil {
		return err
	}

	if err = quoteRepo.Update(ctx, selection.Selected); err != nil {
		return err
	}
	for _, rejected := range selection.Rejected {
		if err = quoteRepo.Update(ctx, rejected); err != nil {
			return err
		}
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	change, err := order.NewStatusChange(o.ID(), from, o.Status(), cmd.Actor().UserID(), "", now)
	if err != nil {
		return err
	}
	if err = orderRepo.AddStatusChange(ctx, change); err != nil {
		return err
	}

	stored, err := quoteRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	if err = verifyStoredSelection(stored, selection.Selected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Dispatch(ctx, selection.Notifications...)
	return nil
}

func containsQuote(quotes []*quote.Quote, id kernel.UUID) bool {
	for _, q := range quotes {
		if q.ID().IsEqual(id) {
			return true
		}
	}
	return false
}

func verifyStoredSelection(stored []*quote.Quote, selected *quote.Quote) error {
	var count int
	for _, q := range stored {
		if q.Status() != quote.Selected {
			continue
		}
		count++
		if !q.ID().IsEqual(selected.ID()) {
			return fmt.Errorf("%w: quote %s is stored as SELECTED", services.ErrSelectionInconsistent, q.ID())
		}
	}
	if count != 1 {
		return fmt.Errorf("%w: %d quotes stored as SELECTED", services.ErrSelectionInconsistent, count)
	}
	return nil
}
