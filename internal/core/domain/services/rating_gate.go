package services

import (
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/core/domain/model/rating"
	"freightdesk/internal/pkg/errs"
)

// RatingInput is what the rater submits.
type RatingInput struct {
	Scores  rating.Scores
	Comment string
}

// RatingGate decides whether a company may rate its counterpart on an order.
//
// A forwarder rates the exporter once its final invoice was accepted. An exporter rates
// the forwarder of the selected quote once the order is CLOSED. Each company rates an
// order at most once.
type RatingGate struct{}

func NewRatingGate() RatingGate {
	return RatingGate{}
}

// RateExporter builds the forwarder -> exporter rating. alreadyRated reports an existing
// rating for (order, actor company).
func (RatingGate) RateExporter(
	actor company.Actor,
	o *order.Order,
	selected *quote.Quote,
	finalInvoice *invoice.Document,
	alreadyRated bool,
	input RatingInput,
	now time.Time,
) (*rating.Rating, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if selected == nil || !o.IsSelectedQuote(selected.ID()) || !selected.IsOwnedBy(actor.CompanyID()) {
		return nil, errs.NewForbiddenError("rate exporter", "caller does not own the order's selected quote")
	}
	if finalInvoice == nil || !finalInvoice.QuoteID().IsEqual(selected.ID()) || !finalInvoice.IsLocked() {
		return nil, errs.NewInvalidStateError("order", o.Status().String(), "be rated before the final invoice is accepted")
	}
	if alreadyRated {
		return nil, errs.NewConflictError("rating", "was already submitted for this order")
	}

	return rating.NewRating(kernel.NewUUID(), o.ID(), actor.CompanyID(), o.ExporterID(),
		rating.ForwarderRatesExporter, input.Scores, input.Comment, actor.UserID(), now)
}

// RateForwarder builds the exporter -> forwarder rating for forwarderID.
func (RatingGate) RateForwarder(
	actor company.Actor,
	o *order.Order,
	selected *quote.Quote,
	forwarderID kernel.UUID,
	alreadyRated bool,
	input RatingInput,
	now time.Time,
) (*rating.Rating, error) {
	if err := requireExporterMember(actor, o, "rate forwarder"); err != nil {
		return nil, err
	}
	if o.Status() != order.Closed {
		return nil, errs.NewInvalidStateError("order", o.Status().String(), "be rated")
	}
	if selected == nil || !o.IsSelectedQuote(selected.ID()) {
		return nil, errs.NewInvalidStateError("order", o.Status().String(), "be rated without a selected quote")
	}
	if !selected.IsOwnedBy(forwarderID) {
		return nil, errs.NewForbiddenError("rate forwarder", "forwarder does not own the order's selected quote")
	}
	if alreadyRated {
		return nil, errs.NewConflictError("rating", "was already submitted for this order")
	}

	return rating.NewRating(kernel.NewUUID(), o.ID(), actor.CompanyID(), forwarderID,
		rating.ExporterRatesForwarder, input.Scores, input.Comment, actor.UserID(), now)
}
