package commands

import (
	"context"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/pkg/errs"
)

type RespondInvitationCommandHandler struct {
	uowFactory UoWFactory
}

func NewRespondInvitationCommandHandler(uowFactory UoWFactory) RespondInvitationCommandHandler {
	return RespondInvitationCommandHandler{uowFactory: uowFactory}
}

// Handle answers the caller's own invitation. Declining is final and stops further quoting.
func (h *RespondInvitationCommandHandler) Handle(ctx context.Context, cmd RespondInvitationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Actor().CompanyType() != company.TypeFreightForwarder {
		return errs.NewForbiddenError("respond to invitation", "only freight forwarders are invited")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invitationRepo := uow.InvitationRepository()
	invitation, err := invitationRepo.Find(ctx, cmd.OrderID(), cmd.Actor().CompanyID())
	if err != nil {
		return err
	}
	if invitation == nil {
		return errs.NewObjectNotFoundError("invitation", cmd.OrderID().String())
	}

	if err = invitation.Respond(cmd.Accept()); err != nil {
		return err
	}
	if err = invitationRepo.Update(ctx, invitation); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
