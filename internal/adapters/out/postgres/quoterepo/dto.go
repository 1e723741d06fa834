// Package quoterepo persists forwarder quotes and their price amendment trail with GORM.
package quoterepo

import (
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteDTO represents the database structure for persisting quotes.
type QuoteDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID       `gorm:"type:uuid"`
	ForwarderCompanyID uuid.UUID       `gorm:"type:uuid"`
	Price              decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency           string
	TransitDays        int
	ValidUntil         time.Time
	Notes              string
	Status             string
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (QuoteDTO) TableName() string {
	return "quotes"
}

// AmendmentDTO is a row of quote_amendments.
type AmendmentDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	QuoteID          uuid.UUID       `gorm:"type:uuid"`
	PreviousPrice    decimal.Decimal `gorm:"type:numeric(14,2)"`
	PreviousCurrency string
	NewPrice         decimal.Decimal `gorm:"type:numeric(14,2)"`
	NewCurrency      string
	Reason           string
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
}

func (AmendmentDTO) TableName() string {
	return "quote_amendments"
}

func fromDomain(q *quote.Quote) QuoteDTO {
	terms := q.Terms()
	return QuoteDTO{
		ID:                 q.ID().Bytes(),
		OrderID:            q.OrderID().Bytes(),
		ForwarderCompanyID: q.ForwarderID().Bytes(),
		Price:              terms.Price.Amount(),
		Currency:           terms.Price.Currency(),
		TransitDays:        terms.TransitDays,
		ValidUntil:         terms.ValidUntil,
		Notes:              terms.Notes,
		Status:             q.Status().String(),
		CreatedAt:          q.CreatedAt(),
		UpdatedAt:          q.UpdatedAt(),
	}
}

func toDomain(dto QuoteDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	forwarderID, err := kernel.UUIDFromBytes(dto.ForwarderCompanyID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price, dto.Currency)
	if err != nil {
		return nil, err
	}

	terms := quote.Terms{
		Price:       price,
		TransitDays: dto.TransitDays,
		ValidUntil:  dto.ValidUntil.UTC(),
		Notes:       dto.Notes,
	}
	return quote.RestoreQuote(id, orderID, forwarderID, terms, quote.Status(dto.Status),
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

func amendmentFromDomain(a quote.Amendment) AmendmentDTO {
	return AmendmentDTO{
		ID:               a.ID.Bytes(),
		QuoteID:          a.QuoteID.Bytes(),
		PreviousPrice:    a.PreviousPrice.Amount(),
		PreviousCurrency: a.PreviousPrice.Currency(),
		NewPrice:         a.NewPrice.Amount(),
		NewCurrency:      a.NewPrice.Currency(),
		Reason:           a.Reason,
		CreatedAt:        a.CreatedAt,
	}
}

func toDomainList(dtos []QuoteDTO) ([]*quote.Quote, error) {
	quotes := make([]*quote.Quote, 0, len(dtos))
	for _, dto := range dtos {
		q, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
