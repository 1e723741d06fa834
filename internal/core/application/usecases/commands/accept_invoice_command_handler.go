package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/services"
)

type AcceptInvoiceCommandHandler struct {
	uowFactory UoWFactory
	desk       services.InvoiceDesk
}

func NewAcceptInvoiceCommandHandler(uowFactory UoWFactory) AcceptInvoiceCommandHandler {
	return AcceptInvoiceCommandHandler{
		uowFactory: uowFactory,
		desk:       services.NewInvoiceDesk(),
	}
}

// Handle locks the invoice. Accepting an already locked invoice succeeds without writing.
func (h *AcceptInvoiceCommandHandler) Handle(ctx context.Context, cmd AcceptInvoiceCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	documentRepo := uow.DocumentRepository()
	var doc *invoice.Document
	if selected := o.SelectedQuote(); selected != nil {
		if doc, err = documentRepo.FindFinalInvoice(ctx, *selected); err != nil {
			return err
		}
	}

	changed, err := h.desk.Accept(cmd.Actor(), o, doc, time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = documentRepo.Update(ctx, doc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
