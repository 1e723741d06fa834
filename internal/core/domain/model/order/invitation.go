package order

import (
	"errors"
	"fmt"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

var ErrInvitationIsNotConstructed = errors.New("Invitation must be created via NewInvitation constructor")

// InvitationStatus is the forwarder's answer to an order invitation.
type InvitationStatus string

const (
	InvitationInvited  InvitationStatus = "INVITED"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
)

func (s InvitationStatus) Validate() error {
	switch s {
	case InvitationInvited, InvitationAccepted, InvitationRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("invitation status", fmt.Errorf("%q is not valid", string(s)))
	}
}

// Invitation links a forwarder company to an order it may quote on.
type Invitation struct {
	orderID     kernel.UUID
	forwarderID kernel.UUID
	status      InvitationStatus
	invitedAt   time.Time
	guard       guard.ConstructorGuard
}

func NewInvitation(orderID, forwarderID kernel.UUID, now time.Time) (*Invitation, error) {
	return RestoreInvitation(orderID, forwarderID, InvitationInvited, now.UTC())
}

func RestoreInvitation(orderID, forwarderID kernel.UUID, status InvitationStatus, invitedAt time.Time) (*Invitation, error) {
	if err := errors.Join(orderID.Validate(), forwarderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	return &Invitation{
		orderID:     orderID,
		forwarderID: forwarderID,
		status:      status,
		invitedAt:   invitedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (i *Invitation) Validate() error {
	if i == nil {
		return ErrInvitationIsNotConstructed
	}
	return i.guard.Validate(ErrInvitationIsNotConstructed)
}

func (i *Invitation) OrderID() kernel.UUID     { return i.orderID }
func (i *Invitation) ForwarderID() kernel.UUID { return i.forwarderID }
func (i *Invitation) Status() InvitationStatus { return i.status }
func (i *Invitation) InvitedAt() time.Time     { return i.invitedAt }

// AllowsQuoting is false once the forwarder rejected the invitation.
func (i *Invitation) AllowsQuoting() bool {
	return i.status != InvitationRejected
}

// Respond records the forwarder's answer. A rejected invitation is final.
func (i *Invitation) Respond(accept bool) error {
	if i.status == InvitationRejected {
		return errs.NewInvalidStateError("invitation", string(i.status), "be answered again")
	}
	if accept {
		i.status = InvitationAccepted
	} else {
		i.status = InvitationRejected
	}
	return nil
}
