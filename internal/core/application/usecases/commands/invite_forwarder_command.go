package commands

import (
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/guard"
)

var ErrInviteForwarderCommandIsNotConstructed = errors.New(
	"InviteForwarderCommand must be created via NewInviteForwarderCommand constructor",
)

// InviteForwarderCommand lets a freight forwarder company quote on an order.
type InviteForwarderCommand struct {
	actor       company.Actor
	orderID     kernel.UUID
	forwarderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewInviteForwarderCommand(actor company.Actor, orderID, forwarderID kernel.UUID) (InviteForwarderCommand, error) {
	if err := errors.Join(checkActor(actor), orderID.Validate(), forwarderID.Validate()); err != nil {
		return InviteForwarderCommand{}, err
	}

	return InviteForwarderCommand{
		actor:       actor,
		orderID:     orderID,
		forwarderID: forwarderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c InviteForwarderCommand) Validate() error {
	return c.guard.Validate(ErrInviteForwarderCommandIsNotConstructed)
}

func (c InviteForwarderCommand) Actor() company.Actor     { return c.actor }
func (c InviteForwarderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c InviteForwarderCommand) ForwarderID() kernel.UUID { return c.forwarderID }
