package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/services"
)

// CreateOrderCommandHandler stores a new OPEN order for an exporter.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	desk       services.OrderDesk
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		desk:       services.NewOrderDesk(),
	}
}

// Handle validates the draft through the order desk and persists the order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.desk.Create(cmd.Actor(), cmd.OrderID(), services.OrderDraft{
		OriginPort:        cmd.OriginPort(),
		DestinationPort:   cmd.DestinationPort(),
		Cargo:             cmd.Cargo(),
		QuotationDeadline: cmd.QuotationDeadline(),
	}, time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
