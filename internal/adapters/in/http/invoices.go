package http

import (
	"net/http"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UploadInvoice handles POST /api/v1/invoices/upload (multipart: order_id, file).
func (s *Server) UploadInvoice(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := bodyUUID("order_id", c.FormValue("order_id"))
	if err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause("file", err)
	}
	body, err := header.Open()
	if err != nil {
		return err
	}
	defer body.Close()

	file := invoice.File{
		Name:        header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
	}
	cmd, err := commands.NewUploadInvoiceCommand(actor, orderID, file, body)
	if err != nil {
		return err
	}

	result, err := s.app.UploadInvoice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, UploadedInvoiceResponse{
		ID:   result.DocumentID.String(),
		Path: result.Path,
		URL:  result.URL,
	})
}

// AcceptInvoice handles POST /api/v1/invoices/accept. Accepting a locked invoice again is a
// no-op that still answers 204.
func (s *Server) AcceptInvoice(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req AcceptInvoiceRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	orderID, err := bodyUUID("order_id", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptInvoiceCommand(actor, orderID)
	if err != nil {
		return err
	}
	if err = s.app.AcceptInvoice.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
