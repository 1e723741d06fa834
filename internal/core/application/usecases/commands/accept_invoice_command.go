package commands

import (
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/guard"
)

var ErrAcceptInvoiceCommandIsNotConstructed = errors.New(
	"AcceptInvoiceCommand must be created via NewAcceptInvoiceCommand constructor",
)

// AcceptInvoiceCommand locks the final invoice of an order's selected quote.
type AcceptInvoiceCommand struct {
	actor   company.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptInvoiceCommand(actor company.Actor, orderID kernel.UUID) (AcceptInvoiceCommand, error) {
	if err := errors.Join(checkActor(actor), orderID.Validate()); err != nil {
		return AcceptInvoiceCommand{}, err
	}
	return AcceptInvoiceCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrAcceptInvoiceCommandIsNotConstructed)
}

func (c AcceptInvoiceCommand) Actor() company.Actor { return c.actor }
func (c AcceptInvoiceCommand) OrderID() kernel.UUID { return c.orderID }
