package ports

import (
	"context"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
)

// CompanyRepository reads companies and memberships for authorization.
type CompanyRepository interface {
	// GetActor loads the membership of userID in companyID. A missing membership yields
	// errs.ObjectNotFoundError.
	GetActor(ctx context.Context, userID, companyID kernel.UUID) (company.Actor, error)

	// GetType returns the company's marketplace side.
	GetType(ctx context.Context, companyID kernel.UUID) (company.Type, error)
}
