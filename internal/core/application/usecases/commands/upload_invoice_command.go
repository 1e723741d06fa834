package commands

import (
	"errors"
	"io"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

var ErrUploadInvoiceCommandIsNotConstructed = errors.New(
	"UploadInvoiceCommand must be created via NewUploadInvoiceCommand constructor",
)

// UploadInvoiceCommand carries the selected forwarder's final invoice file.
type UploadInvoiceCommand struct {
	actor   company.Actor
	orderID kernel.UUID
	file    invoice.File
	body    io.Reader

	guard guard.ConstructorGuard
}

func NewUploadInvoiceCommand(actor company.Actor, orderID kernel.UUID, file invoice.File, body io.Reader) (UploadInvoiceCommand, error) {
	var bodyErr error
	if body == nil {
		bodyErr = errs.NewValueIsRequiredError("file")
	}
	if err := errors.Join(checkActor(actor), orderID.Validate(), bodyErr); err != nil {
		return UploadInvoiceCommand{}, err
	}

	return UploadInvoiceCommand{
		actor:   actor,
		orderID: orderID,
		file:    file,
		body:    body,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UploadInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrUploadInvoiceCommandIsNotConstructed)
}

func (c UploadInvoiceCommand) Actor() company.Actor { return c.actor }
func (c UploadInvoiceCommand) OrderID() kernel.UUID { return c.orderID }
func (c UploadInvoiceCommand) File() invoice.File   { return c.file }
func (c UploadInvoiceCommand) Body() io.Reader      { return c.body }
