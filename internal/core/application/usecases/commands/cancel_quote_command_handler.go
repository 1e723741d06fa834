package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/services"
)

type CancelQuoteCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	desk       services.QuoteDesk
}

func NewCancelQuoteCommandHandler(uowFactory UoWFactory, notifier Notifier) CancelQuoteCommandHandler {
	return CancelQuoteCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		desk:       services.NewQuoteDesk(),
	}
}

// Handle cancels the quote and, once committed, notifies the exporter immediately.
func (h *CancelQuoteCommandHandler) Handle(ctx context.Context, cmd CancelQuoteCommand) error {
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

	o, q, err := lockQuote(ctx, uow, cmd.QuoteID())
	if err != nil {
		return err
	}

	cancelled, err := h.desk.Cancel(cmd.Actor(), o, q, time.Now())
	if err != nil {
		return err
	}

	if err = uow.QuoteRepository().Update(ctx, q); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Dispatch(ctx, cancelled)
	return nil
}
