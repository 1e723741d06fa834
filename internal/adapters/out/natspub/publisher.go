// Package natspub hands marketplace notifications to the notification service over NATS.
//
// Subject convention: <prefix>.<event>, e.g. notifications.freightdesk.quote_selected.
package natspub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"freightdesk/internal/core/domain/model/notification"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const DefaultSubjectPrefix = "notifications.freightdesk"

// DefaultFlushTimeout bounds the flush when the caller's context carries no deadline.
const DefaultFlushTimeout = 5 * time.Second

// Event is the JSON document published for every notification.
type Event struct {
	ID         string    `json:"id"`
	EventType  string    `json:"event_type"`
	OrderID    string    `json:"order_id"`
	QuoteID    string    `json:"quote_id,omitempty"`
	Recipients []string  `json:"recipients"`
	Channel    string    `json:"channel"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher implements ports.NotificationPublisher.
type Publisher struct {
	conn   *nats.Conn
	prefix string
	log    zerolog.Logger
}

// Connect dials url and returns a publisher using prefix for its subjects.
func Connect(url, prefix string, log zerolog.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("freightdesk"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return New(conn, prefix, log), nil
}

func New(conn *nats.Conn, prefix string, log zerolog.Logger) *Publisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &Publisher{conn: conn, prefix: strings.TrimSuffix(prefix, "."), log: log}
}

// Subject returns the subject an event is published on.
func (p *Publisher) Subject(event notification.Event) string {
	return p.prefix + "." + strings.ToLower(string(event))
}

// Publish sends n and waits for the server to acknowledge the flush, so a nil error means
// the message reached NATS.
func (p *Publisher) Publish(ctx context.Context, n notification.Notification) error {
	event := Event{
		ID:        n.ID.String(),
		EventType: string(n.Event),
		OrderID:   n.OrderID.String(),
		Channel:   "email",
		CreatedAt: n.CreatedAt,
	}
	if n.QuoteID != nil {
		event.QuoteID = n.QuoteID.String()
	}
	for _, r := range n.Recipients {
		event.Recipients = append(event.Recipients, r.String())
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}

	subject := p.Subject(n.Event)
	if err = p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	if err = p.flush(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", subject, err)
	}

	p.log.Debug().
		Str("subject", subject).
		Str("notification_id", event.ID).
		Int("recipients", len(event.Recipients)).
		Msg("notification published")
	return nil
}

// flush waits for the server round trip. nats.Conn.FlushWithContext refuses a context
// without a deadline.
func (p *Publisher) flush(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		return p.conn.FlushTimeout(DefaultFlushTimeout)
	}
	return p.conn.FlushWithContext(ctx)
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() error {
	return p.conn.Drain()
}
