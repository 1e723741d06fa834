package queries

import (
	"context"
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/ports"
	"freightdesk/internal/pkg/errs"
)

type ResolveActorQueryHandler struct {
	companies ports.CompanyRepository
}

func NewResolveActorQueryHandler(companies ports.CompanyRepository) ResolveActorQueryHandler {
	return ResolveActorQueryHandler{companies: companies}
}

// Handle returns Forbidden when the user is not a member of the company.
func (h ResolveActorQueryHandler) Handle(ctx context.Context, query ResolveActorQuery) (company.Actor, error) {
	if err := query.Validate(); err != nil {
		return company.Actor{}, err
	}

	actor, err := h.companies.GetActor(ctx, query.UserID(), query.CompanyID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return company.Actor{}, errs.NewForbiddenError("act for company", "user is not a member of the company")
		}
		return company.Actor{}, err
	}
	return actor, nil
}
