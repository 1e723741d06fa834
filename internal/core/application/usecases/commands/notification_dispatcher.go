package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/notification"
	"freightdesk/internal/core/ports"

	"github.com/rs/zerolog"
)

// Notifier receives the notifications a transition produced, after its transaction committed.
type Notifier interface {
	Dispatch(ctx context.Context, notifications ...notification.Notification)
}

// NotificationDispatcher publishes immediate events right away and queues everything in the
// outbox. Batched events are delivered later by SendPendingNotificationsCommandHandler; an
// immediate event whose publish failed is queued unsent and retried by the same sweep.
// Failures are logged and never returned: the transition they follow is already committed.
type NotificationDispatcher struct {
	uowFactory NotificationUoWFactory
	publisher  ports.NotificationPublisher
	log        zerolog.Logger
}

func NewNotificationDispatcher(
	uowFactory NotificationUoWFactory,
	publisher ports.NotificationPublisher,
	log zerolog.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

func (d *NotificationDispatcher) Dispatch(ctx context.Context, notifications ...notification.Notification) {
	if len(notifications) == 0 {
		return
	}
	ctx, cancel := afterCommit(ctx)
	defer cancel()

	queued := make([]notification.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.Event.IsImmediate() {
			if err := d.publisher.Publish(ctx, n); err != nil {
				d.log.Warn().Err(err).
					Str("event", string(n.Event)).
					Str("order_id", n.OrderID.String()).
					Msg("immediate notification not published, queued for the email sweep")
			} else {
				n.MarkSent(time.Now())
			}
		}
		queued = append(queued, n)
	}

	if err := d.uowFactory.Create().NotificationRepository().Add(ctx, queued...); err != nil {
		d.log.Warn().Err(err).Int("count", len(queued)).Msg("notifications not stored")
	}
}
