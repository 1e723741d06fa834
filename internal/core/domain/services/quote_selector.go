package services

import (
	"errors"
	"fmt"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/errs"
)

// ErrSelectionInconsistent is returned when a selection would leave an order with a number
// of SELECTED quotes other than one. It classifies as an internal error.
var ErrSelectionInconsistent = errors.New("selection postcondition violated")

// Selection is everything the caller must persist and announce after a successful selection.
type Selection struct {
	Order         *order.Order
	Selected      *quote.Quote
	Rejected      []*quote.Quote
	Notifications []notification.Notification
}

// QuoteSelector implements the PENDING -> CLOSED transition.
//
// Business rules:
//   - only members of the exporter company select
//   - the order must be PENDING and the quote ACTIVE and placed on that order
//   - every other ACTIVE quote on the order is REJECTED in the same step
//   - exactly one quote is SELECTED afterwards, otherwise nothing may be committed
type QuoteSelector struct{}

func NewQuoteSelector() QuoteSelector {
	return QuoteSelector{}
}

// Select applies the selection of quoteID to o. quotes must hold every quote of the order,
// including the chosen one.
func (QuoteSelector) Select(
	actor company.Actor,
	o *order.Order,
	quoteID kernel.UUID,
	quotes []*quote.Quote,
	now time.Time,
) (Selection, error) {
	if err := o.Validate(); err != nil {
		return Selection{}, err
	}
	if err := requireExporterMember(actor, o, "select quote"); err != nil {
		return Selection{}, err
	}
	if o.Status() != order.Pending {
		return Selection{}, errs.NewInvalidStateError("order", o.Status().String(), "select a quote")
	}

	var target *quote.Quote
	for _, q := range quotes {
		if q.ID().IsEqual(quoteID) {
			target = q
			break
		}
	}
	if target == nil {
		return Selection{}, errs.NewObjectNotFoundError("quote", quoteID.String())
	}
	if !target.BelongsTo(o.ID()) {
		return Selection{}, errs.NewInvalidStateError("quote", target.Status().String(), "be selected for another order")
	}
	if target.Status() != quote.Active {
		return Selection{}, errs.NewInvalidStateError("quote", target.Status().String(), "be selected")
	}

	if err := target.Select(now); err != nil {
		return Selection{}, err
	}
	if err := o.Close(target.ID()); err != nil {
		return Selection{}, err
	}

	var rejected []*quote.Quote
	for _, q := range quotes {
		if q == target || !q.BelongsTo(o.ID()) || q.Status() != quote.Active {
			continue
		}
		if err := q.Reject(now); err != nil {
			return Selection{}, err
		}
		rejected = append(rejected, q)
	}

	if err := verifySingleSelected(quotes); err != nil {
		return Selection{}, err
	}

	notifications, err := selectionNotifications(o, target, rejected, now)
	if err != nil {
		return Selection{}, err
	}

	return Selection{
		Order:         o,
		Selected:      target,
		Rejected:      rejected,
		Notifications: notifications,
	}, nil
}

func verifySingleSelected(quotes []*quote.Quote) error {
	selected := 0
	for _, q := range quotes {
		if q.Status() == quote.Selected {
			selected++
		}
	}
	if selected != 1 {
		return fmt.Errorf("%w: %d quotes selected", ErrSelectionInconsistent, selected)
	}
	return nil
}

func selectionNotifications(o *order.Order, selected *quote.Quote, rejected []*quote.Quote, now time.Time) ([]notification.Notification, error) {
	selectedID := selected.ID()
	won, err := notification.New(notification.QuoteSelected, o.ID(), &selectedID, []kernel.UUID{selected.ForwarderID()}, now)
	if err != nil {
		return nil, err
	}
	out := []notification.Notification{won}

	losers := uniqueForwarders(rejected)
	if len(losers) == 0 {
		return out, nil
	}
	closed, err := notification.New(notification.OrderClosed, o.ID(), nil, losers, now)
	if err != nil {
		return nil, err
	}
	return append(out, closed), nil
}

func uniqueForwarders(quotes []*quote.Quote) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(quotes))
	var out []kernel.UUID
	for _, q := range quotes {
		if _, ok := seen[q.ForwarderID()]; ok {
			continue
		}
		seen[q.ForwarderID()] = struct{}{}
		out = append(out, q.ForwarderID())
	}
	return out
}
