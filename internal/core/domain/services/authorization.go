package services

import (
	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/errs"
)

func requireActor(actor company.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthorizedError("no authenticated company member")
	}
	return nil
}

func requireExporterMember(actor company.Actor, o *order.Order, action string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.BelongsTo(o.ExporterID()) {
		return errs.NewForbiddenError(action, "caller is not a member of the order's exporter company")
	}
	return nil
}

func requireExporterAdmin(actor company.Actor, o *order.Order, action string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.IsAdminOf(o.ExporterID()) {
		return errs.NewForbiddenError(action, "caller is not an admin of the order's exporter company")
	}
	return nil
}

func requireQuoteOwner(actor company.Actor, q *quote.Quote, action string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !q.IsOwnedBy(actor.CompanyID()) {
		return errs.NewForbiddenError(action, "quote is not owned by the caller's company")
	}
	return nil
}
