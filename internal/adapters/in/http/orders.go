package http

import (
	"net/http"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/application/usecases/queries"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(actor, orderID, req.OriginPort, req.DestinationPort, order.Cargo{
		Description:   req.Cargo.Description,
		WeightKg:      req.Cargo.WeightKg,
		VolumeCbm:     req.Cargo.VolumeCbm,
		ContainerType: req.Cargo.ContainerType,
	}, req.QuotationDeadline)
	if err != nil {
		return err
	}

	if err = s.app.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderDetailsQuery(actor, orderID)
	if err != nil {
		return err
	}

	details, err := s.app.GetOrderDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderDetailsResponse(details))
}

// InviteForwarder handles POST /api/v1/orders/{id}/invitations.
func (s *Server) InviteForwarder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req InviteRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	forwarderID, err := bodyUUID("forwarder_id", req.ForwarderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewInviteForwarderCommand(actor, orderID, forwarderID)
	if err != nil {
		return err
	}
	if err = s.app.InviteForwarder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RespondInvitation handles POST /api/v1/orders/{id}/invitations/respond.
func (s *Server) RespondInvitation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req RespondInvitationRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRespondInvitationCommand(actor, orderID, req.Accept)
	if err != nil {
		return err
	}
	if err = s.app.RespondInvitation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReviewQuotes handles POST /api/v1/orders/{id}/review (OPEN -> PENDING).
func (s *Server) ReviewQuotes(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewReviewQuotesCommand(actor, orderID)
	if err != nil {
		return err
	}
	if err = s.app.ReviewQuotes.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/{id}/status (REASSIGN or VOIDED).
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req StatusChangeRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actor, orderID, req.Status, req.Reason)
	if err != nil {
		return err
	}
	if err = s.app.ChangeOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
