package services

import (
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/errs"
)

// Submission is the outcome of a quote submission: either a new quote or an amended one.
type Submission struct {
	Quote     *quote.Quote
	Amendment *quote.Amendment
	Created   bool
}

// QuoteDesk covers the forwarder side of bidding.
//
// Business rules:
//   - only invited, non-rejected forwarders quote
//   - quotes are created or changed while the order is OPEN or PENDING
//   - a forwarder holds at most one ACTIVE quote per order, resubmitting amends it
//   - a price change is recorded as an Amendment before the quote changes
//   - cancelling is not allowed while the exporter reviews quotes (PENDING)
type QuoteDesk struct{}

func NewQuoteDesk() QuoteDesk {
	return QuoteDesk{}
}

// Submit creates the forwarder's quote or, when active is its current ACTIVE quote on o,
// amends it.
func (d QuoteDesk) Submit(
	actor company.Actor,
	o *order.Order,
	invitation *order.Invitation,
	active *quote.Quote,
	terms quote.Terms,
	reason string,
	now time.Time,
) (Submission, error) {
	if err := requireInvited(actor, invitation); err != nil {
		return Submission{}, err
	}
	if !o.Status().AcceptsQuotes() {
		return Submission{}, errs.NewInvalidStateError("order", o.Status().String(), "accept quotes")
	}

	if active != nil {
		amendment, err := d.amend(actor, active, terms, reason, now)
		if err != nil {
			return Submission{}, err
		}
		return Submission{Quote: active, Amendment: amendment}, nil
	}

	q, err := quote.NewQuote(kernel.NewUUID(), o.ID(), actor.CompanyID(), terms, now)
	if err != nil {
		return Submission{}, err
	}
	return Submission{Quote: q, Created: true}, nil
}

// Amend changes the terms of q on behalf of its owner.
func (d QuoteDesk) Amend(
	actor company.Actor,
	o *order.Order,
	invitation *order.Invitation,
	q *quote.Quote,
	terms quote.Terms,
	reason string,
	now time.Time,
) (*quote.Amendment, error) {
	if err := requireQuoteOwner(actor, q, "amend quote"); err != nil {
		return nil, err
	}
	if err := requireInvited(actor, invitation); err != nil {
		return nil, err
	}
	if !o.Status().AcceptsQuotes() {
		return nil, errs.NewInvalidStateError("order", o.Status().String(), "accept quote changes")
	}
	return d.amend(actor, q, terms, reason, now)
}

// Cancel withdraws q and returns the immediate notification for the exporter.
func (QuoteDesk) Cancel(actor company.Actor, o *order.Order, q *quote.Quote, now time.Time) (notification.Notification, error) {
	if err := requireQuoteOwner(actor, q, "cancel quote"); err != nil {
		return notification.Notification{}, err
	}
	if q.Status() != quote.Active {
		return notification.Notification{}, errs.NewInvalidStateError("quote", q.Status().String(), "be cancelled")
	}
	if o.Status() == order.Pending {
		return notification.Notification{}, errs.NewInvalidStateError("order", o.Status().String(), "release quotes under review")
	}
	if err := q.Cancel(now); err != nil {
		return notification.Notification{}, err
	}

	quoteID := q.ID()
	return notification.New(notification.QuoteCancelled, o.ID(), &quoteID, []kernel.UUID{o.ExporterID()}, now)
}

func (QuoteDesk) amend(actor company.Actor, q *quote.Quote, terms quote.Terms, reason string, now time.Time) (*quote.Amendment, error) {
	if err := requireQuoteOwner(actor, q, "amend quote"); err != nil {
		return nil, err
	}
	return q.Amend(terms, reason, now)
}

func requireInvited(actor company.Actor, invitation *order.Invitation) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.CompanyType() != company.TypeFreightForwarder {
		return errs.NewForbiddenError("quote", "only freight forwarders quote")
	}
	if invitation == nil || !invitation.ForwarderID().IsEqual(actor.CompanyID()) {
		return errs.NewForbiddenError("quote", "forwarder was not invited to this order")
	}
	if !invitation.AllowsQuoting() {
		return errs.NewForbiddenError("quote", "forwarder rejected the invitation")
	}
	return nil
}
