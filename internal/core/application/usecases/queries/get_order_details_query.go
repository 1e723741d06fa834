package queries

import (
	"errors"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

var (
	ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
		"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
	)
)

// GetOrderDetailsQuery reads an order together with its quotes and final invoice state.
//
// Members of the exporter company see every quote. An invited forwarder sees the order and
// only its own quotes, plus the invoice when its quote is the selected one.
//
// Example:
//
//	query, err := NewGetOrderDetailsQuery(actor, orderID)
//	details, err := handler.Handle(ctx, query)
type GetOrderDetailsQuery struct {
	actor   company.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(actor company.Actor, orderID kernel.UUID) (GetOrderDetailsQuery, error) {
	if err := errors.Join(checkActor(actor), orderID.Validate()); err != nil {
		return GetOrderDetailsQuery{}, err
	}

	return GetOrderDetailsQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) Actor() company.Actor { return q.actor }
func (q GetOrderDetailsQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderDetailsQueryResponse is the order view returned by GET /orders/{id}.
type GetOrderDetailsQueryResponse struct {
	ID                kernel.UUID
	Reference         string
	ExporterID        kernel.UUID
	OriginPort        string
	DestinationPort   string
	Cargo             CargoView
	Status            string
	SelectedQuoteID   *kernel.UUID
	QuotationDeadline time.Time
	CreatedAt         time.Time
	Quotes            []QuoteView
	Invoice           *InvoiceView
}

type CargoView struct {
	Description   string
	WeightKg      float64
	VolumeCbm     float64
	ContainerType string
}

type QuoteView struct {
	ID          kernel.UUID
	ForwarderID kernel.UUID
	Price       kernel.Money
	TransitDays int
	ValidUntil  time.Time
	Notes       string
	Status      string
	UpdatedAt   time.Time
}

// InvoiceView is the final invoice attached to the selected quote.
type InvoiceView struct {
	DocumentID kernel.UUID
	Path       string
	FileName   string
	Locked     bool
	AcceptedAt *time.Time
	UploadedAt time.Time
}

func checkActor(actor company.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthorizedError("caller is not authenticated")
	}
	return nil
}
