// Package notificationrepo is the PostgreSQL notification outbox.
package notificationrepo

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationDTO is a row of notifications. Recipients are company identifiers.
type NotificationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Event      string
	OrderID    uuid.UUID      `gorm:"type:uuid"`
	QuoteID    *uuid.UUID     `gorm:"type:uuid"`
	Recipients pq.StringArray `gorm:"type:text[]"`
	CreatedAt  time.Time      `gorm:"autoCreateTime:false"`
	SentAt     *time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n notification.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:        n.ID.Bytes(),
		Event:     string(n.Event),
		OrderID:   n.OrderID.Bytes(),
		CreatedAt: n.CreatedAt,
		SentAt:    n.SentAt,
	}
	if n.QuoteID != nil {
		raw := n.QuoteID.Bytes()
		dto.QuoteID = &raw
	}
	for _, r := range n.Recipients {
		dto.Recipients = append(dto.Recipients, r.String())
	}
	return dto
}

func toDomain(dto NotificationDTO) (notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return notification.Notification{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return notification.Notification{}, err
	}

	n := notification.Notification{
		ID:        id,
		Event:     notification.Event(dto.Event),
		OrderID:   orderID,
		CreatedAt: dto.CreatedAt.UTC(),
		SentAt:    dto.SentAt,
	}
	if dto.QuoteID != nil {
		quoteID, quoteErr := kernel.UUIDFromBytes((*dto.QuoteID)[:])
		if quoteErr != nil {
			return notification.Notification{}, quoteErr
		}
		n.QuoteID = &quoteID
	}
	for _, raw := range dto.Recipients {
		recipient, recipientErr := kernel.UUIDFromString(raw)
		if recipientErr != nil {
			return notification.Notification{}, recipientErr
		}
		n.Recipients = append(n.Recipients, recipient)
	}
	return n, nil
}

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewGormNotificationRepository(db *gorm.DB, log zerolog.Logger) *GormNotificationRepository {
	return &GormNotificationRepository{db: db, log: log}
}

func (r *GormNotificationRepository) Add(ctx context.Context, notifications ...notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, fromDomain(n))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// AddOnce relies on uq_notifications_reminder_once: a reminder already queued for the same
// order and event is silently skipped.
func (r *GormNotificationRepository) AddOnce(ctx context.Context, n notification.Notification) (bool, error) {
	dto := fromDomain(n)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListUnsent returns unsent notifications, oldest first. A row that no longer decodes is
// logged and left out so it cannot hold back the rest of the batch; it stays unsent.
func (r *GormNotificationRepository) ListUnsent(ctx context.Context, limit int) ([]notification.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			r.log.Error().Err(err).
				Str("notification_id", dto.ID.String()).
				Str("event", dto.Event).
				Msg("skipping undecodable notification")
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

// MarkSent stamps sent_at on notifications that are still unsent.
func (r *GormNotificationRepository) MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id IN ? AND sent_at IS NULL", raw).
		Update("sent_at", at.UTC()).Error
}
