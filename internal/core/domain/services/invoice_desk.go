package services

import (
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/errs"
)

// UploadPlan tells the caller where to write the file and which document row to save.
// Objects under StalePrefix are cleared before the new object is written.
type UploadPlan struct {
	Document    *invoice.Document
	ObjectPath  string
	StalePrefix string
	Created     bool
}

// InvoiceDesk implements the final invoice upload and accept workflow.
type InvoiceDesk struct{}

func NewInvoiceDesk() InvoiceDesk {
	return InvoiceDesk{}
}

// PlanUpload checks that the actor owns the order's selected quote and that no accepted
// invoice exists, then creates or replaces the document. existing is the current
// FINAL_INVOICE of the selected quote, if any.
func (InvoiceDesk) PlanUpload(
	actor company.Actor,
	o *order.Order,
	selected *quote.Quote,
	existing *invoice.Document,
	file invoice.File,
	now time.Time,
) (UploadPlan, error) {
	if err := requireActor(actor); err != nil {
		return UploadPlan{}, err
	}
	if selected == nil || !o.IsSelectedQuote(selected.ID()) {
		return UploadPlan{}, errs.NewForbiddenError("upload invoice", "quote is not the order's selected quote")
	}
	if !selected.IsOwnedBy(actor.CompanyID()) {
		return UploadPlan{}, errs.NewForbiddenError("upload invoice", "selected quote is not owned by the caller's company")
	}
	if o.Status() != order.Closed {
		return UploadPlan{}, errs.NewInvalidStateError("order", o.Status().String(), "receive invoices")
	}
	if existing != nil && existing.IsLocked() {
		return UploadPlan{}, errs.NewConflictError("final invoice", "is already accepted and locked")
	}

	ext, err := file.Extension()
	if err != nil {
		return UploadPlan{}, err
	}
	objectPath := invoice.Path(o.Reference(), selected.ID(), ext)
	plan := UploadPlan{
		ObjectPath:  objectPath,
		StalePrefix: invoice.Prefix(o.Reference(), selected.ID()),
	}

	if existing != nil {
		if err = existing.Replace(objectPath, file, actor.UserID(), now); err != nil {
			return UploadPlan{}, err
		}
		plan.Document = existing
		return plan, nil
	}

	doc, err := invoice.NewFinalInvoice(kernel.NewUUID(), selected.ID(), objectPath, file, actor.UserID(), now)
	if err != nil {
		return UploadPlan{}, err
	}
	plan.Document = doc
	plan.Created = true
	return plan, nil
}

// Accept locks the selected quote's invoice. It reports whether anything changed; a second
// accept is a successful no-op.
func (InvoiceDesk) Accept(actor company.Actor, o *order.Order, doc *invoice.Document, now time.Time) (bool, error) {
	if err := requireExporterMember(actor, o, "accept invoice"); err != nil {
		return false, err
	}
	selected := o.SelectedQuote()
	if selected == nil {
		return false, errs.NewObjectNotFoundError("final invoice", o.ID().String())
	}
	if doc == nil || !doc.QuoteID().IsEqual(*selected) {
		return false, errs.NewObjectNotFoundError("final invoice", selected.String())
	}
	return doc.Accept(actor.UserID(), now)
}
