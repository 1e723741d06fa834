package services

import (
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"
	"freightdesk/internal/core/domain/model/order"
)

const (
	dueSoonWindow     = 7 * 24 * time.Hour
	dueImminentWindow = 24 * time.Hour
)

// ReminderPlanner picks the quotation deadline reminder an OPEN order is due for.
type ReminderPlanner struct{}

func NewReminderPlanner() ReminderPlanner {
	return ReminderPlanner{}
}

// DueEvent returns ORDER_DUE_24_HOURS inside the last day, ORDER_DUE_7_DAYS inside the last
// week and false otherwise.
func (ReminderPlanner) DueEvent(o *order.Order, now time.Time) (notification.Event, bool) {
	switch {
	case o.DeadlineWithin(now, dueImminentWindow):
		return notification.OrderDue24Hours, true
	case o.DeadlineWithin(now, dueSoonWindow):
		return notification.OrderDue7Days, true
	default:
		return "", false
	}
}

// Plan builds the reminder for the exporter and every forwarder still allowed to quote.
func (p ReminderPlanner) Plan(o *order.Order, invitations []*order.Invitation, now time.Time) (notification.Notification, bool, error) {
	event, ok := p.DueEvent(o, now)
	if !ok {
		return notification.Notification{}, false, nil
	}

	recipients := []kernel.UUID{o.ExporterID()}
	for _, inv := range invitations {
		if inv.AllowsQuoting() {
			recipients = append(recipients, inv.ForwarderID())
		}
	}

	n, err := notification.New(event, o.ID(), nil, recipients, now)
	if err != nil {
		return notification.Notification{}, false, err
	}
	return n, true, nil
}
