package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/services"
)

type InviteForwarderCommandHandler struct {
	uowFactory UoWFactory
	desk       services.OrderDesk
}

func NewInviteForwarderCommandHandler(uowFactory UoWFactory) InviteForwarderCommandHandler {
	return InviteForwarderCommandHandler{
		uowFactory: uowFactory,
		desk:       services.NewOrderDesk(),
	}
}

// Handle records an INVITED row for the forwarder. Inviting the same forwarder twice is a
// conflict.
func (h *InviteForwarderCommandHandler) Handle(ctx context.Context, cmd InviteForwarderCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	forwarderType, err := uow.CompanyRepository().GetType(ctx, cmd.ForwarderID())
	if err != nil {
		return err
	}

	invitationRepo := uow.InvitationRepository()
	existing, err := invitationRepo.Find(ctx, o.ID(), cmd.ForwarderID())
	if err != nil {
		return err
	}

	invitation, err := h.desk.Invite(cmd.Actor(), o, cmd.ForwarderID(), forwarderType, existing, time.Now())
	if err != nil {
		return err
	}

	if err = invitationRepo.Add(ctx, invitation); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
