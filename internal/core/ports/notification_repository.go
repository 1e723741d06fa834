package ports

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"
)

// NotificationRepository is the notification outbox.
type NotificationRepository interface {
	// Add stores notifications as they are, sent or not.
	Add(ctx context.Context, notifications ...notification.Notification) error

	// AddOnce stores n unless the same (order, event) reminder already exists and reports
	// whether a row was written.
	AddOnce(ctx context.Context, n notification.Notification) (bool, error)

	// ListUnsent returns at most limit unsent notifications, oldest first.
	ListUnsent(ctx context.Context, limit int) ([]notification.Notification, error)

	// MarkSent stamps sent_at on the given notifications that are still unsent.
	MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
