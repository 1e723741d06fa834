package commands

import (
	"context"
	"time"

	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/core/domain/services"
)

// RateCompanyCommandHandler stores ratings between the two sides of a closed order.
type RateCompanyCommandHandler struct {
	uowFactory UoWFactory
	gate       services.RatingGate
}

func NewRateCompanyCommandHandler(uowFactory UoWFactory) RateCompanyCommandHandler {
	return RateCompanyCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRatingGate(),
	}
}

// HandleRateExporter stores the forwarder's rating once its final invoice has been accepted.
func (h *RateCompanyCommandHandler) HandleRateExporter(ctx context.Context, cmd RateExporterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, selected, err := h.loadSelection(ctx, uow, cmd.OrderID())
	if err != nil {
		return err
	}

	var finalInvoice *invoice.Document
	if selected != nil {
		if finalInvoice, err = uow.DocumentRepository().FindFinalInvoice(ctx, selected.ID()); err != nil {
			return err
		}
	}

	ratingRepo := uow.RatingRepository()
	rated, err := ratingRepo.Exists(ctx, o.ID(), cmd.Actor().CompanyID())
	if err != nil {
		return err
	}

	r, err := h.gate.RateExporter(cmd.Actor(), o, selected, finalInvoice, rated, cmd.Input(), time.Now())
	if err != nil {
		return err
	}
	if err = ratingRepo.Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// HandleRateForwarder stores the exporter's rating of the selected forwarder.
func (h *RateCompanyCommandHandler) HandleRateForwarder(ctx context.Context, cmd RateForwarderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, selected, err := h.loadSelection(ctx, uow, cmd.OrderID())
	if err != nil {
		return err
	}

	ratingRepo := uow.RatingRepository()
	rated, err := ratingRepo.Exists(ctx, o.ID(), cmd.Actor().CompanyID())
	if err != nil {
		return err
	}

	r, err := h.gate.RateForwarder(cmd.Actor(), o, selected, cmd.ForwarderID(), rated, cmd.Input(), time.Now())
	if err != nil {
		return err
	}
	if err = ratingRepo.Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *RateCompanyCommandHandler) loadSelection(ctx context.Context, uow UoW, orderID kernel.UUID) (*order.Order, *quote.Quote, error) {
	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	selected, err := selectedQuote(ctx, uow.QuoteRepository(), o)
	if err != nil {
		return nil, nil, err
	}
	return o, selected, nil
}
