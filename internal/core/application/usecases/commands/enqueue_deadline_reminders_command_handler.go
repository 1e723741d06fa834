package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/services"
)

const reminderHorizon = 7 * 24 * time.Hour

// EnqueueDeadlineRemindersCommandHandler writes ORDER_DUE_7_DAYS and ORDER_DUE_24_HOURS rows
// into the outbox. The outbox keeps one row per (order, reminder event), so repeated runs
// enqueue each reminder once.
type EnqueueDeadlineRemindersCommandHandler struct {
	uowFactory NotificationUoWFactory
	planner    services.ReminderPlanner
}

func NewEnqueueDeadlineRemindersCommandHandler(uowFactory NotificationUoWFactory) EnqueueDeadlineRemindersCommandHandler {
	return EnqueueDeadlineRemindersCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewReminderPlanner(),
	}
}

// Handle returns the number of reminders newly queued.
func (h *EnqueueDeadlineRemindersCommandHandler) Handle(ctx context.Context, cmd EnqueueDeadlineRemindersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	orders, err := uow.OrderRepository().ListOpenDueBefore(ctx, now, now.Add(reminderHorizon))
	if err != nil {
		return 0, err
	}

	invitationRepo := uow.InvitationRepository()
	notificationRepo := uow.NotificationRepository()

	var queued int
	for _, o := range orders {
		invitations, listErr := invitationRepo.ListByOrder(ctx, o.ID())
		if listErr != nil {
			return 0, listErr
		}

		reminder, due, planErr := h.planner.Plan(o, invitations, now)
		if planErr != nil {
			return 0, planErr
		}
		if !due {
			continue
		}

		added, addErr := notificationRepo.AddOnce(ctx, reminder)
		if addErr != nil {
			return 0, addErr
		}
		if added {
			queued++
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return queued, nil
}
