package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/services"
	"freightdesk/internal/core/ports"

	"github.com/rs/zerolog"
)

type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	storage    ports.ObjectStorage
	log        zerolog.Logger
	changer    services.StatusChanger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	storage ports.ObjectStorage,
	log zerolog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		log:        log,
		changer:    services.NewStatusChanger(),
	}
}

// Handle applies the transition, deletes the affected invoice rows and records the history
// row in one transaction. Invoice objects are deleted from storage after commit.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	documentRepo := uow.DocumentRepository()
	invoices, err := documentRepo.ListFinalInvoicesByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	result, err := h.changer.Change(cmd.Actor(), o, cmd.Target(), cmd.Reason(), invoices, time.Now())
	if err != nil {
		return err
	}

	if err = documentRepo.Delete(ctx, result.RemovedDocuments); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = orderRepo.AddStatusChange(ctx, result.Change); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	runCompensations(ctx, h.storage, h.log.With().Str("order_id", o.ID().String()).Logger(), result.Compensations)
	return nil
}
