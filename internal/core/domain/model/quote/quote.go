package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

const (
	minTransitDays = 1
	maxTransitDays = 365
	maxNotesLength = 2000
)

// ErrQuoteIsNotConstructed is returned when a Quote was not created via NewQuote or RestoreQuote.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote constructor")

// Terms are the forwarder controlled fields of a quote.
type Terms struct {
	Price       kernel.Money
	TransitDays int
	ValidUntil  time.Time
	Notes       string
}

func (t Terms) validate(now time.Time) error {
	var validationErrs []error
	if err := t.Price.Validate(); err != nil {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredErrorWithCause("price", err))
	}
	if t.TransitDays < minTransitDays || t.TransitDays > maxTransitDays {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("transit days", t.TransitDays, minTransitDays, maxTransitDays))
	}
	if t.ValidUntil.IsZero() {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("valid until"))
	} else if !t.ValidUntil.After(now) {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"valid until", fmt.Errorf("%s is not in the future", t.ValidUntil.Format(time.RFC3339))))
	}
	if len(t.Notes) > maxNotesLength {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("notes length", len(t.Notes), 0, maxNotesLength))
	}
	return errors.Join(validationErrs...)
}

// Quote is a forwarder's priced bid on an order.
//
// Invariants:
//   - belongs to exactly one order and one forwarder company
//   - price is a positive Money value
//   - status moves only away from ACTIVE
type Quote struct {
	id          kernel.UUID
	orderID     kernel.UUID
	forwarderID kernel.UUID
	terms       Terms
	status      Status
	createdAt   time.Time
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewQuote creates an ACTIVE quote.
func NewQuote(id, orderID, forwarderID kernel.UUID, terms Terms, now time.Time) (*Quote, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		forwarderID.Validate(),
		terms.validate(now),
	); err != nil {
		return nil, err
	}

	terms.Notes = strings.TrimSpace(terms.Notes)
	return &Quote{
		id:          id,
		orderID:     orderID,
		forwarderID: forwarderID,
		terms:       terms,
		status:      Active,
		createdAt:   now.UTC(),
		updatedAt:   now.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreQuote rebuilds a quote from persistence. Validity is not re-checked against the
// clock: an ACTIVE quote past its valid_until is simply awaiting the expiry job.
func RestoreQuote(
	id, orderID, forwarderID kernel.UUID,
	terms Terms,
	status Status,
	createdAt, updatedAt time.Time,
) (*Quote, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		forwarderID.Validate(),
		terms.Price.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Quote{
		id:          id,
		orderID:     orderID,
		forwarderID: forwarderID,
		terms:       terms,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q *Quote) Validate() error {
	if q == nil {
		return ErrQuoteIsNotConstructed
	}
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

func (q *Quote) ID() kernel.UUID          { return q.id }
func (q *Quote) OrderID() kernel.UUID     { return q.orderID }
func (q *Quote) ForwarderID() kernel.UUID { return q.forwarderID }
func (q *Quote) Terms() Terms             { return q.terms }
func (q *Quote) Price() kernel.Money      { return q.terms.Price }
func (q *Quote) Status() Status           { return q.status }
func (q *Quote) CreatedAt() time.Time     { return q.createdAt }
func (q *Quote) UpdatedAt() time.Time     { return q.updatedAt }

// BelongsTo reports whether the quote was placed on orderID.
func (q *Quote) BelongsTo(orderID kernel.UUID) bool {
	return q.orderID.IsEqual(orderID)
}

// IsOwnedBy reports whether companyID placed the quote.
func (q *Quote) IsOwnedBy(companyID kernel.UUID) bool {
	return q.forwarderID.IsEqual(companyID)
}

// Amend replaces the terms of an ACTIVE quote. When the price changes the returned
// Amendment must be stored before the quote itself; otherwise it is nil.
func (q *Quote) Amend(terms Terms, reason string, now time.Time) (*Amendment, error) {
	if q.status != Active {
		return nil, errs.NewInvalidStateError("quote", q.status.String(), "be amended")
	}
	if err := terms.validate(now); err != nil {
		return nil, err
	}

	var amendment *Amendment
	if !q.terms.Price.Equal(terms.Price) {
		a, err := NewAmendment(q.id, q.terms.Price, terms.Price, reason, now)
		if err != nil {
			return nil, err
		}
		amendment = &a
	}

	terms.Notes = strings.TrimSpace(terms.Notes)
	q.terms = terms
	q.updatedAt = now.UTC()
	return amendment, nil
}

// Select marks the winning quote.
func (q *Quote) Select(now time.Time) error {
	return q.leaveActive(Selected, "be selected", now)
}

// Reject marks a losing quote when another one is selected.
func (q *Quote) Reject(now time.Time) error {
	return q.leaveActive(Rejected, "be rejected", now)
}

// Cancel withdraws the quote on behalf of its forwarder.
func (q *Quote) Cancel(now time.Time) error {
	return q.leaveActive(Cancelled, "be cancelled", now)
}

// Expire marks an ACTIVE quote whose validity has lapsed at now.
func (q *Quote) Expire(now time.Time) error {
	if q.status == Active && q.terms.ValidUntil.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("valid until",
			fmt.Errorf("quote is valid until %s", q.terms.ValidUntil.Format(time.RFC3339)))
	}
	return q.leaveActive(Expired, "expire", now)
}

func (q *Quote) leaveActive(next Status, action string, now time.Time) error {
	if q.status != Active {
		return errs.NewInvalidStateError("quote", q.status.String(), action)
	}
	q.status = next
	q.updatedAt = now.UTC()
	return nil
}
