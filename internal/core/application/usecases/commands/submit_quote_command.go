package commands

import (
	"errors"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/guard"
)

var ErrSubmitQuoteCommandIsNotConstructed = errors.New(
	"SubmitQuoteCommand must be created via NewSubmitQuoteCommand constructor",
)

// SubmitQuoteCommand carries a forwarder's bid on an order. Submitting again while the
// forwarder still has an ACTIVE quote amends that quote.
type SubmitQuoteCommand struct {
	actor   company.Actor
	orderID kernel.UUID
	terms   quote.Terms
	reason  string

	guard guard.ConstructorGuard
}

// NewSubmitQuoteCommand parses the price. Transit time and validity are checked by the
// quote aggregate.
func NewSubmitQuoteCommand(
	actor company.Actor,
	orderID kernel.UUID,
	price, currency string,
	transitDays int,
	validUntil time.Time,
	notes, reason string,
) (SubmitQuoteCommand, error) {
	money, priceErr := kernel.MoneyFromString(price, currency)
	if err := errors.Join(checkActor(actor), orderID.Validate(), priceErr); err != nil {
		return SubmitQuoteCommand{}, err
	}

	return SubmitQuoteCommand{
		actor:   actor,
		orderID: orderID,
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

func (c SubmitQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSubmitQuoteCommandIsNotConstructed)
}

func (c SubmitQuoteCommand) Actor() company.Actor { return c.actor }
func (c SubmitQuoteCommand) OrderID() kernel.UUID { return c.orderID }
func (c SubmitQuoteCommand) Terms() quote.Terms   { return c.terms }
func (c SubmitQuoteCommand) Reason() string       { return c.reason }
