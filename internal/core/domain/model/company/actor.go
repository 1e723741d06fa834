// Package company models the caller of every marketplace operation: a user acting
// through a membership in an exporter or freight-forwarder company.
package company

import (
	"errors"
	"fmt"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created via NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the membership role of a user inside a company.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleMember:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// Type distinguishes the two sides of the marketplace.
type Type string

const (
	TypeExporter         Type = "EXPORTER"
	TypeFreightForwarder Type = "FREIGHT_FORWARDER"
)

func (t Type) Validate() error {
	switch t {
	case TypeExporter, TypeFreightForwarder:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("company type", fmt.Errorf("%q is not a valid company type", string(t)))
	}
}

// Actor is the explicit caller context threaded into every transition. It replaces any
// implicit "current company" lookup: authorization decisions read only from it.
type Actor struct {
	userID       kernel.UUID
	companyID    kernel.UUID
	membershipID kernel.UUID
	role         Role
	companyType  Type
	guard        guard.ConstructorGuard
}

// NewActor validates and builds an Actor.
func NewActor(userID, companyID, membershipID kernel.UUID, role Role, companyType Type) (Actor, error) {
	if err := errors.Join(
		userID.Validate(),
		companyID.Validate(),
		membershipID.Validate(),
		role.Validate(),
		companyType.Validate(),
	); err != nil {
		return Actor{}, err
	}

	return Actor{
		userID:       userID,
		companyID:    companyID,
		membershipID: membershipID,
		role:         role,
		companyType:  companyType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) UserID() kernel.UUID       { return a.userID }
func (a Actor) CompanyID() kernel.UUID    { return a.companyID }
func (a Actor) MembershipID() kernel.UUID { return a.membershipID }
func (a Actor) Role() Role                { return a.role }
func (a Actor) CompanyType() Type         { return a.companyType }

// BelongsTo reports whether the actor acts for companyID.
func (a Actor) BelongsTo(companyID kernel.UUID) bool {
	return a.companyID.IsEqual(companyID)
}

// IsAdminOf reports whether the actor holds the ADMIN role in companyID.
func (a Actor) IsAdminOf(companyID kernel.UUID) bool {
	return a.BelongsTo(companyID) && a.role == RoleAdmin
}
