package commands

import (
	"errors"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents an exporter posting a new shipment request.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(actor, orderID, "CNSHA", "NLRTM",
//	    order.Cargo{Description: "machine parts", WeightKg: 1200}, time.Now().Add(72*time.Hour))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct {
	actor             company.Actor
	orderID           kernel.UUID
	originPort        string
	destinationPort   string
	cargo             order.Cargo
	quotationDeadline time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the caller and identifier. Ports, cargo and the deadline are
// validated by the order aggregate itself.
func NewCreateOrderCommand(
	actor company.Actor,
	orderID kernel.UUID,
	originPort, destinationPort string,
	cargo order.Cargo,
	quotationDeadline time.Time,
) (CreateOrderCommand, error) {
	if err := errors.Join(checkActor(actor), orderID.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		actor:             actor,
		orderID:           orderID,
		originPort:        originPort,
		destinationPort:   destinationPort,
		cargo:             cargo,
		quotationDeadline: quotationDeadline,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() company.Actor         { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID         { return c.orderID }
func (c CreateOrderCommand) OriginPort() string           { return c.originPort }
func (c CreateOrderCommand) DestinationPort() string      { return c.destinationPort }
func (c CreateOrderCommand) Cargo() order.Cargo           { return c.cargo }
func (c CreateOrderCommand) QuotationDeadline() time.Time { return c.quotationDeadline }
