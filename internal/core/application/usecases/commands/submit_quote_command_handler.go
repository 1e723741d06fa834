package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/services"
)

// SubmitQuoteResult identifies the quote that now carries the submitted terms.
type SubmitQuoteResult struct {
	QuoteID kernel.UUID
	Created bool
}

type SubmitQuoteCommandHandler struct {
	uowFactory UoWFactory
	desk       services.QuoteDesk
}

func NewSubmitQuoteCommandHandler(uowFactory UoWFactory) SubmitQuoteCommandHandler {
	return SubmitQuoteCommandHandler{
		uowFactory: uowFactory,
		desk:       services.NewQuoteDesk(),
	}
}

// Handle looks up the forwarder's ACTIVE quote under the order lock and either inserts a new
// quote or writes the amendment row followed by the new terms.
func (h *SubmitQuoteCommandHandler) Handle(ctx context.Context, cmd SubmitQuoteCommand) (SubmitQuoteResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitQuoteResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SubmitQuoteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return SubmitQuoteResult{}, err
	}

	forwarderID := cmd.Actor().CompanyID()
	invitation, err := uow.InvitationRepository().Find(ctx, o.ID(), forwarderID)
	if err != nil {
		return SubmitQuoteResult{}, err
	}

	quoteRepo := uow.QuoteRepository()
	active, err := quoteRepo.FindActive(ctx, o.ID(), forwarderID)
	if err != nil {
		return SubmitQuoteResult{}, err
	}

	submission, err := h.desk.Submit(cmd.Actor(), o, invitation, active, cmd.Terms(), cmd.Reason(), time.Now())
	if err != nil {
		return SubmitQuoteResult{}, err
	}

	if submission.Created {
		err = quoteRepo.Add(ctx, submission.Quote)
	} else {
		if submission.Amendment != nil {
			if err = quoteRepo.AddAmendment(ctx, *submission.Amendment); err != nil {
				return SubmitQuoteResult{}, err
			}
		}
		err = quoteRepo.Update(ctx, submission.Quote)
	}
	if err != nil {
		return SubmitQuoteResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitQuoteResult{}, err
	}

	return SubmitQuoteResult{
		QuoteID: submission.Quote.ID(),
		Created: submission.Created,
	}, nil
}
