package commands

import (
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/guard"
)

var ErrCancelQuoteCommandIsNotConstructed = errors.New(
	"CancelQuoteCommand must be created via NewCancelQuoteCommand constructor",
)

// CancelQuoteCommand withdraws a forwarder's ACTIVE quote.
type CancelQuoteCommand struct {
	actor   company.Actor
	quoteID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelQuoteCommand(actor company.Actor, quoteID kernel.UUID) (CancelQuoteCommand, error) {
	if err := errors.Join(checkActor(actor), quoteID.Validate()); err != nil {
		return CancelQuoteCommand{}, err
	}
	return CancelQuoteCommand{actor: actor, quoteID: quoteID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCancelQuoteCommandIsNotConstructed)
}

func (c CancelQuoteCommand) Actor() company.Actor { return c.actor }
func (c CancelQuoteCommand) QuoteID() kernel.UUID { return c.quoteID }
