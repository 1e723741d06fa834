// Package notification models the outbox of marketplace events delivered to companies.
package notification

import (
	"errors"
	"fmt"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
)

// Event is the notification type tag handed to the dispatcher.
type Event string

const (
	QuoteSelected   Event = "QUOTE_SELECTED"
	QuoteCancelled  Event = "QUOTE_CANCELLED"
	OrderDue7Days   Event = "ORDER_DUE_7_DAYS"
	OrderDue24Hours Event = "ORDER_DUE_24_HOURS"
	OrderClosed     Event = "ORDER_CLOSED"
)

func (e Event) Validate() error {
	switch e {
	case QuoteSelected, QuoteCancelled, OrderDue7Days, OrderDue24Hours, OrderClosed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a known event", string(e)))
	}
}

// IsImmediate reports whether the event bypasses the batched email sweep.
func (e Event) IsImmediate() bool {
	return e == QuoteCancelled
}

// Notification is one outbox row. Recipients are company identifiers.
type Notification struct {
	ID         kernel.UUID
	Event      Event
	OrderID    kernel.UUID
	QuoteID    *kernel.UUID
	Recipients []kernel.UUID
	CreatedAt  time.Time
	SentAt     *time.Time
}

func New(event Event, orderID kernel.UUID, quoteID *kernel.UUID, recipients []kernel.UUID, now time.Time) (Notification, error) {
	var recipientsErr error
	if len(recipients) == 0 {
		recipientsErr = errs.NewValueIsRequiredError("recipients")
	}
	for _, r := range recipients {
		if err := r.Validate(); err != nil {
			recipientsErr = errors.Join(recipientsErr, err)
		}
	}
	if err := errors.Join(event.Validate(), orderID.Validate(), recipientsErr); err != nil {
		return Notification{}, err
	}

	return Notification{
		ID:         kernel.NewUUID(),
		Event:      event,
		OrderID:    orderID,
		QuoteID:    quoteID,
		Recipients: recipients,
		CreatedAt:  now.UTC(),
	}, nil
}

// IsSent reports whether the sweep (or the immediate path) delivered the notification.
func (n Notification) IsSent() bool {
	return n.SentAt != nil
}

// MarkSent stamps the delivery time.
func (n *Notification) MarkSent(now time.Time) {
	at := now.UTC()
	n.SentAt = &at
}
