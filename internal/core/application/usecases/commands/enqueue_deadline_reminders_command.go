package commands

import (
	"errors"

	"freightdesk/internal/pkg/guard"
)

var ErrEnqueueDeadlineRemindersCommandIsNotConstructed = errors.New(
	"EnqueueDeadlineRemindersCommand must be created via NewEnqueueDeadlineRemindersCommand constructor",
)

// EnqueueDeadlineRemindersCommand queues quotation deadline reminders for OPEN orders.
type EnqueueDeadlineRemindersCommand struct {
	guard guard.ConstructorGuard
}

func NewEnqueueDeadlineRemindersCommand() EnqueueDeadlineRemindersCommand {
	return EnqueueDeadlineRemindersCommand{guard: guard.NewConstructorGuard()}
}

func (c EnqueueDeadlineRemindersCommand) Validate() error {
	return c.guard.Validate(ErrEnqueueDeadlineRemindersCommandIsNotConstructed)
}
