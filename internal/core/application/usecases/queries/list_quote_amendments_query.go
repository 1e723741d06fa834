package queries

import (
	"errors"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/guard"
)

var (
	ErrListQuoteAmendmentsQueryIsNotConstructed = errors.New(
		"ListQuoteAmendmentsQuery must be created via NewListQuoteAmendmentsQuery constructor",
	)
)

// ListQuoteAmendmentsQuery reads the price history of one quote. Visible to the quoting
// forwarder and to members of the order's exporter company.
type ListQuoteAmendmentsQuery struct {
	actor   company.Actor
	quoteID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListQuoteAmendmentsQuery(actor company.Actor, quoteID kernel.UUID) (ListQuoteAmendmentsQuery, error) {
	if err := errors.Join(checkActor(actor), quoteID.Validate()); err != nil {
		return ListQuoteAmendmentsQuery{}, err
	}

	return ListQuoteAmendmentsQuery{
		actor:   actor,
		quoteID: quoteID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListQuoteAmendmentsQuery) Validate() error {
	return q.guard.Validate(ErrListQuoteAmendmentsQueryIsNotConstructed)
}

func (q ListQuoteAmendmentsQuery) Actor() company.Actor { return q.actor }
func (q ListQuoteAmendmentsQuery) QuoteID() kernel.UUID { return q.quoteID }

// AmendmentView is one recorded price change, oldest first.
type AmendmentView struct {
	ID            kernel.UUID
	PreviousPrice kernel.Money
	NewPrice      kernel.Money
	Reason        string
	CreatedAt     time.Time
}
