package commands

import (
	"errors"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/guard"
)

var ErrAmendQuoteCommandIsNotConstructed = errors.New(
	"AmendQuoteCommand must be created via NewAmendQuoteCommand constructor",
)

// AmendQuoteCommand replaces the terms of the forwarder's ACTIVE quote.
type AmendQuoteCommand struct {
	actor   company.Actor
	quoteID kernel.UUID
	terms   quote.Terms
	reason  string

	guard guard.ConstructorGuard
}

func NewAmendQuoteCommand(
	actor company.Actor,
	quoteID kernel.UUID,
	price, currency string,
	transitDays int,
	validUntil time.Time,
	notes, reason string,
) (AmendQuoteCommand, error) {
	money, priceErr := kernel.MoneyFromString(price, currency)
	if err := errors.Join(checkActor(actor), quoteID.Validate(), priceErr); err != nil {
		return AmendQuoteCommand{}, err
	}

	return AmendQuoteCommand{
		actor:   actor,
		quoteID: quoteID,
		terms: quote.Terms{
			Price:       money,
			TransitDays: transitDays,
			ValidUntil:  validUntil,
			Notes:       notes,
		},
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AmendQuoteCommand) Validate() error {
	return c.guard.Validate(ErrAmendQuoteCommandIsNotConstructed)
}

func (c AmendQuoteCommand) Actor() company.Actor { return c.actor }
func (c AmendQuoteCommand) QuoteID() kernel.UUID { return c.quoteID }
func (c AmendQuoteCommand) Terms() quote.Terms   { return c.terms }
func (c AmendQuoteCommand) Reason() string       { return c.reason }
