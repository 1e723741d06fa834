package documentrepo

import (
	"context"

	"freightdesk/internal/adapters/out/postgres/pgerrs"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const finalInvoiceFilter = "documents.entity_type = ? AND documents.metadata ->> 'type' = ?"

// GormDocumentRepository implements ports.DocumentRepository using GORM.
type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Add inserts a new document. uq_documents_final_invoice turns a concurrent second upload
// for the same quote into a conflict.
func (r *GormDocumentRepository) Add(ctx context.Context, doc *invoice.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(doc)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "final invoice", "already exists for this quote")
	}
	return nil
}

// Update writes path and metadata. Locked rows are never overwritten with an unlocked copy.
func (r *GormDocumentRepository) Update(ctx context.Context, doc *invoice.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(doc)
	query := r.db.WithContext(ctx).Model(&DocumentDTO{}).Where("id = ?", dto.ID)
	if !doc.IsLocked() {
		query = query.Where("COALESCE((metadata ->> 'locked')::boolean, false) = false")
	}

	result := query.Updates(map[string]any{
		"file_path":  dto.FilePath,
		"metadata":   dto.Metadata,
		"updated_at": dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if doc.IsLocked() {
			return errs.NewObjectNotFoundError("document", doc.ID().String())
		}
		return errs.NewConflictError("final invoice", "is locked")
	}
	return nil
}

// FindFinalInvoice returns the quote's FINAL_INVOICE or nil.
func (r *GormDocumentRepository) FindFinalInvoice(ctx context.Context, quoteID kernel.UUID) (*invoice.Document, error) {
	var dtos []DocumentDTO
	if err := r.db.WithContext(ctx).
		Where(finalInvoiceFilter, invoice.EntityQuote, invoice.TypeFinalInvoice).
		Where("documents.entity_id = ?", quoteID.Bytes()).
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return nil, nil
	}
	return toDomain(dtos[0])
}

// ListFinalInvoicesByOrder returns the FINAL_INVOICE documents of every quote on the order.
func (r *GormDocumentRepository) ListFinalInvoicesByOrder(ctx context.Context, orderID kernel.UUID) ([]*invoice.Document, error) {
	var dtos []DocumentDTO
	if err := r.db.WithContext(ctx).
		Joins("JOIN quotes ON quotes.id = documents.entity_id").
		Where(finalInvoiceFilter, invoice.EntityQuote, invoice.TypeFinalInvoice).
		Where("quotes.order_id = ?", orderID.Bytes()).
		Order("documents.created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	docs := make([]*invoice.Document, 0, len(dtos))
	for _, dto := range dtos {
		doc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Delete removes documents by identifier.
func (r *GormDocumentRepository) Delete(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).Where("id IN ?", raw).Delete(&DocumentDTO{}).Error
}
