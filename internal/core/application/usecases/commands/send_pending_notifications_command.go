package commands

import (
	"errors"

	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

const maxNotificationBatch = 1000

var ErrSendPendingNotificationsCommandIsNotConstructed = errors.New(
	"SendPendingNotificationsCommand must be created via NewSendPendingNotificationsCommand constructor",
)

// SendPendingNotificationsCommand triggers one pass of the email sweep over the outbox.
//
// Example:
//
//	cmd, _ := NewSendPendingNotificationsCommand(100)
//	sent, err := handler.Handle(ctx, cmd)
type SendPendingNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewSendPendingNotificationsCommand(batchSize int) (SendPendingNotificationsCommand, error) {
	if batchSize < 1 || batchSize > maxNotificationBatch {
		return SendPendingNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, maxNotificationBatch)
	}
	return SendPendingNotificationsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c SendPendingNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrSendPendingNotificationsCommandIsNotConstructed)
}

func (c SendPendingNotificationsCommand) BatchSize() int { return c.batchSize }
