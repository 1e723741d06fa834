package commands

import (
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/guard"
)

var ErrSelectQuoteCommandIsNotConstructed = errors.New(
	"SelectQuoteCommand must be created via NewSelectQuoteCommand constructor",
)

// SelectQuoteCommand awards a PENDING order to one of its ACTIVE quotes.
type SelectQuoteCommand struct {
	actor   company.Actor
	orderID kernel.UUID
	quoteID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSelectQuoteCommand(actor company.Actor, orderID, quoteID kernel.UUID) (SelectQuoteCommand, error) {
	if err := errors.Join(checkActor(actor), orderID.Validate(), quoteID.Validate()); err != nil {
		return SelectQuoteCommand{}, err
	}

	return SelectQuoteCommand{
		actor:   actor,
		orderID: orderID,
		quoteID: quoteID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SelectQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSelectQuoteCommandIsNotConstructed)
}

func (c SelectQuoteCommand) Actor() company.Actor { return c.actor }
func (c SelectQuoteCommand) OrderID() kernel.UUID { return c.orderID }
func (c SelectQuoteCommand) QuoteID() kernel.UUID { return c.quoteID }
