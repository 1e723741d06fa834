package commands

import (
	"context"
	"fmt"
	"time"

	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/services"
	"freightdesk/internal/core/ports"
)

// UploadInvoiceResult points at the stored FINAL_INVOICE.
type UploadInvoiceResult struct {
	DocumentID kernel.UUID
	Path       string
	URL        string
}

type UploadInvoiceCommandHandler struct {
	uowFactory UoWFactory
	storage    ports.ObjectStorage
	desk       services.InvoiceDesk
}

func NewUploadInvoiceCommandHandler(uowFactory UoWFactory, storage ports.ObjectStorage) UploadInvoiceCommandHandler {
	return UploadInvoiceCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		desk:       services.NewInvoiceDesk(),
	}
}

// Handle writes the file under the quote's deterministic path and stores or replaces the
// document row. Objects left under the quote's prefix by earlier uploads are removed first,
// so the prefix never holds more than the current invoice.
func (h *UploadInvoiceCommandHandler) Handle(ctx context.Context, cmd UploadInvoiceCommand) (UploadInvoiceResult, error) {
	if err := cmd.Validate(); err != nil {
		return UploadInvoiceResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UploadInvoiceResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return UploadInvoiceResult{}, err
	}

	selected, err := selectedQuote(ctx, uow.QuoteRepository(), o)
	if err != nil {
		return UploadInvoiceResult{}, err
	}

	documentRepo := uow.DocumentRepository()
	var existing *invoice.Document
	if selected != nil {
		if existing, err = documentRepo.FindFinalInvoice(ctx, selected.ID()); err != nil {
			return UploadInvoiceResult{}, err
		}
	}

	plan, err := h.desk.PlanUpload(cmd.Actor(), o, selected, existing, cmd.File(), time.Now())
	if err != nil {
		return UploadInvoiceResult{}, err
	}

	if err = h.clearPrefix(ctx, plan.StalePrefix); err != nil {
		return UploadInvoiceResult{}, err
	}

	ext, err := cmd.File().Extension()
	if err != nil {
		return UploadInvoiceResult{}, err
	}
	if err = h.storage.Put(ctx, plan.ObjectPath, invoice.ContentTypeFor(ext), cmd.Body(), cmd.File().Size); err != nil {
		return UploadInvoiceResult{}, fmt.Errorf("store invoice object: %w", err)
	}

	if plan.Created {
		err = documentRepo.Add(ctx, plan.Document)
	} else {
		err = documentRepo.Update(ctx, plan.Document)
	}
	if err != nil {
		return UploadInvoiceResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UploadInvoiceResult{}, err
	}

	return UploadInvoiceResult{
		DocumentID: plan.Document.ID(),
		Path:       plan.ObjectPath,
		URL:        h.storage.PublicURL(plan.ObjectPath),
	}, nil
}

func (h *UploadInvoiceCommandHandler) clearPrefix(ctx context.Context, prefix string) error {
	keys, err := h.storage.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("list stale invoice objects: %w", err)
	}
	for _, key := range keys {
		if err = h.storage.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete stale invoice object %s: %w", key, err)
		}
	}
	return nil
}
