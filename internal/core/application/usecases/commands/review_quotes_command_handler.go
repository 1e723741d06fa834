package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/services"
)

type ReviewQuotesCommandHandler struct {
	uowFactory UoWFactory
	desk       services.OrderDesk
}

func NewReviewQuotesCommandHandler(uowFactory UoWFactory) ReviewQuotesCommandHandler {
	return ReviewQuotesCommandHandler{
		uowFactory: uowFactory,
		desk:       services.NewOrderDesk(),
	}
}

// Handle moves the order OPEN -> PENDING and records the transition in the status history.
func (h *ReviewQuotesCommandHandler) Handle(ctx context.Context, cmd ReviewQuotesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	active, err := uow.QuoteRepository().CountActive(ctx, o.ID())
	if err != nil {
		return err
	}

	now := time.Now()
	from := o.Status()
	if err = h.desk.OpenReview(cmd.Actor(), o, int(active)); err != nil {
		return err
	}

	change, err := order.NewStatusChange(o.ID(), from, o.Status(), cmd.Actor().UserID(), "", now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = orderRepo.AddStatusChange(ctx, change); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
