package queries

import (
	"errors"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

var (
	ErrResolveActorQueryIsNotConstructed = errors.New(
		"ResolveActorQuery must be created via NewResolveActorQuery constructor",
	)
)

// ResolveActorQuery turns the caller's user and company identifiers into a company actor.
type ResolveActorQuery struct {
	userID    kernel.UUID
	companyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResolveActorQuery parses raw identifiers. Anything unparsable is reported as
// Unauthorized: the caller never proved who they are.
func NewResolveActorQuery(userID, companyID string) (ResolveActorQuery, error) {
	user, userErr := kernel.UUIDFromString(userID)
	comp, companyErr := kernel.UUIDFromString(companyID)
	if err := errors.Join(userErr, companyErr); err != nil {
		return ResolveActorQuery{}, errs.NewUnauthorizedError("user and company identifiers are required")
	}

	return ResolveActorQuery{
		userID:    user,
		companyID: comp,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ResolveActorQuery) Validate() error {
	return q.guard.Validate(ErrResolveActorQueryIsNotConstructed)
}

func (q ResolveActorQuery) UserID() kernel.UUID    { return q.userID }
func (q ResolveActorQuery) CompanyID() kernel.UUID { return q.companyID }
