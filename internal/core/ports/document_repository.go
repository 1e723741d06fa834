package ports

import (
	"context"

	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
)

// DocumentRepository persists FINAL_INVOICE documents.
type DocumentRepository interface {
	// Add inserts a new document. A second FINAL_INVOICE for the same quote is a conflict.
	Add(ctx context.Context, doc *invoice.Document) error

	// Update writes path and metadata of an existing document.
	Update(ctx context.Context, doc *invoice.Document) error

	// FindFinalInvoice returns the quote's FINAL_INVOICE or nil.
	FindFinalInvoice(ctx context.Context, quoteID kernel.UUID) (*invoice.Document, error)

	// ListFinalInvoicesByOrder returns the FINAL_INVOICE documents of every quote on the order.
	ListFinalInvoicesByOrder(ctx context.Context, orderID kernel.UUID) ([]*invoice.Document, error)

	// Delete removes documents by identifier.
	Delete(ctx context.Context, ids []kernel.UUID) error
}
