package http

import (
	"net/http"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/domain/model/rating"

	"github.com/labstack/echo/v4"
)

func scoresFrom(raw map[string]int) rating.Scores {
	scores := make(rating.Scores, len(raw))
	for category, score := range raw {
		scores[rating.Category(category)] = score
	}
	return scores
}

// RateExporter handles POST /api/v1/orders/{id}/rate-exporter.
func (s *Server) RateExporter(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req RatingRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRateExporterCommand(actor, orderID, scoresFrom(req.Scores), req.Comment)
	if err != nil {
		return err
	}
	if err = s.app.Ratings.HandleRateExporter(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// RateForwarder handles POST /api/v1/orders/{id}/rate-forwarder.
func (s *Server) RateForwarder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req RatingRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	forwarderID, err := bodyUUID("forwarder_id", req.ForwarderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRateForwarderCommand(actor, orderID, forwarderID, scoresFrom(req.Scores), req.Comment)
	if err != nil {
		return err
	}
	if err = s.app.Ratings.HandleRateForwarder(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}
