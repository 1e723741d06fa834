// Package documentrepo persists FINAL_INVOICE documents. Metadata is kept in a JSONB
// column so lock and acceptance state travel with the file reference.
package documentrepo

import (
	"time"

	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DocumentDTO is a row of the polymorphic documents table.
type DocumentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityType string
	EntityID   uuid.UUID `gorm:"type:uuid"`
	FilePath   string
	Metadata   datatypes.JSONType[invoice.Metadata] `gorm:"type:jsonb"`
	CreatedAt  time.Time                            `gorm:"autoCreateTime:false"`
	UpdatedAt  time.Time                            `gorm:"autoUpdateTime:false"`
}

func (DocumentDTO) TableName() string {
	return "documents"
}

func fromDomain(doc *invoice.Document) DocumentDTO {
	return DocumentDTO{
		ID:         doc.ID().Bytes(),
		EntityType: invoice.EntityQuote,
		EntityID:   doc.QuoteID().Bytes(),
		FilePath:   doc.Path(),
		Metadata:   datatypes.NewJSONType(doc.Metadata()),
		CreatedAt:  doc.CreatedAt(),
		UpdatedAt:  doc.UpdatedAt(),
	}
}

func toDomain(dto DocumentDTO) (*invoice.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	quoteID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}
	return invoice.RestoreDocument(id, quoteID, dto.FilePath, dto.Metadata.Data(),
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
