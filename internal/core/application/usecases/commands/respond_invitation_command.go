package commands

import (
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/guard"
)

var ErrRespondInvitationCommandIsNotConstructed = errors.New(
	"RespondInvitationCommand must be created via NewRespondInvitationCommand constructor",
)

// RespondInvitationCommand records a forwarder accepting or declining an order invitation.
type RespondInvitationCommand struct {
	actor   company.Actor
	orderID kernel.UUID
	accept  bool

	guard guard.ConstructorGuard
}

func NewRespondInvitationCommand(actor company.Actor, orderID kernel.UUID, accept bool) (RespondInvitationCommand, error) {
	if err := errors.Join(checkActor(actor), orderID.Validate()); err != nil {
		return RespondInvitationCommand{}, err
	}

	return RespondInvitationCommand{
		actor:   actor,
		orderID: orderID,
		accept:  accept,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RespondInvitationCommand) Validate() error {
	return c.guard.Validate(ErrRespondInvitationCommandIsNotConstructed)
}

func (c RespondInvitationCommand) Actor() company.Actor { return c.actor }
func (c RespondInvitationCommand) OrderID() kernel.UUID { return c.orderID }
func (c RespondInvitationCommand) Accept() bool         { return c.accept }
