package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/ports"

	"github.com/rs/zerolog"
)

// SendPendingNotificationsCommandHandler delivers queued notifications.
//
// Two overlapping sweeps may publish the same row twice; MarkSent only stamps rows that are
// still unsent, and receivers tolerate duplicates.
type SendPendingNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	publisher  ports.NotificationPublisher
	log        zerolog.Logger
}

func NewSendPendingNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	publisher ports.NotificationPublisher,
	log zerolog.Logger,
) SendPendingNotificationsCommandHandler {
	return SendPendingNotificationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

// Handle publishes up to one batch and returns how many notifications were delivered.
// A failed publish leaves the row unsent for the next pass.
func (h *SendPendingNotificationsCommandHandler) Handle(ctx context.Context, cmd SendPendingNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	repo := h.uowFactory.Create().NotificationRepository()
	pending, err := repo.ListUnsent(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	sent := make([]kernel.UUID, 0, len(pending))
	for _, n := range pending {
		if err = h.publisher.Publish(ctx, n); err != nil {
			h.log.Warn().Err(err).
				Str("notification_id", n.ID.String()).
				Str("event", string(n.Event)).
				Msg("notification not published, retrying on the next sweep")
			continue
		}
		sent = append(sent, n.ID)
	}

	if len(sent) == 0 {
		return 0, nil
	}
	if err = repo.MarkSent(ctx, sent, time.Now()); err != nil {
		return 0, err
	}
	return len(sent), nil
}
