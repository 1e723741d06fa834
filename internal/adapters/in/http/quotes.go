package http

import (
	"net/http"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// SubmitQuote handles POST /api/v1/orders/{id}/quotes. A forwarder with an ACTIVE quote on
// the order gets it amended (200) instead of a second quote (201).
func (s *Server) SubmitQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req QuoteRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSubmitQuoteCommand(actor, orderID, req.Price, req.Currency, req.TransitDays,
		req.ValidUntil, req.Notes, req.Reason)
	if err != nil {
		return err
	}

	result, err := s.app.SubmitQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, CreatedResponse{ID: result.QuoteID.String()})
}

// SelectQuote handles PATCH /api/v1/orders/{id}/quotes/{quoteId}/select.
func (s *Server) SelectQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	quoteID, err := pathUUID(c, "quoteId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewSelectQuoteCommand(actor, orderID, quoteID)
	if err != nil {
		return err
	}
	if err = s.app.SelectQuote.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AmendQuote handles PATCH /api/v1/forwarders/quotes/{id}.
func (s *Server) AmendQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	quoteID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req QuoteRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAmendQuoteCommand(actor, quoteID, req.Price, req.Currency, req.TransitDays,
		req.ValidUntil, req.Notes, req.Reason)
	if err != nil {
		return err
	}
	if err = s.app.AmendQuote.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelQuote handles PATCH /api/v1/forwarders/quotes/{id}/cancel.
func (s *Server) CancelQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	quoteID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelQuoteCommand(actor, quoteID)
	if err != nil {
		return err
	}
	if err = s.app.CancelQuote.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListQuoteAmendments handles GET /api/v1/forwarders/quotes/{id}/amendments.
func (s *Server) ListQuoteAmendments(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	quoteID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewListQuoteAmendmentsQuery(actor, quoteID)
	if err != nil {
		return err
	}

	history, err := s.app.ListAmendments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, amendmentDTOs(history))
}
