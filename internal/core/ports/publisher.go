package ports

import (
	"context"

	"freightdesk/internal/core/domain/model/notification"
)

// NotificationPublisher hands a notification to the email/notification dispatcher.
type NotificationPublisher interface {
	Publish(ctx context.Context, n notification.Notification) error
}
