package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/services"
)

type AmendQuoteCommandHandler struct {
	uowFactory UoWFactory
	desk       services.QuoteDesk
}

func NewAmendQuoteCommandHandler(uowFactory UoWFactory) AmendQuoteCommandHandler {
	return AmendQuoteCommandHandler{
		uowFactory: uowFactory,
		desk:       services.NewQuoteDesk(),
	}
}

// Handle stores the price amendment, when there is one, before the new terms.
func (h *AmendQuoteCommandHandler) Handle(ctx context.Context, cmd AmendQuoteCommand) error {
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

	invitation, err := uow.InvitationRepository().Find(ctx, o.ID(), cmd.Actor().CompanyID())
	if err != nil {
		return err
	}

	amendment, err := h.desk.Amend(cmd.Actor(), o, invitation, q, cmd.Terms(), cmd.Reason(), time.Now())
	if err != nil {
		return err
	}

	quoteRepo := uow.QuoteRepository()
	if amendment != nil {
		if err = quoteRepo.AddAmendment(ctx, *amendment); err != nil {
			return err
		}
	}
	if err = quoteRepo.Update(ctx, q); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
