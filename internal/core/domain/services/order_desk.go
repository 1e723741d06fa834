package services

import (
	"fmt"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/pkg/errs"
)

// OrderDesk covers the exporter side of the bidding phase.
type OrderDesk struct{}

func NewOrderDesk() OrderDesk {
	return OrderDesk{}
}

// OrderDraft carries the exporter supplied fields of a new order.
type OrderDraft struct {
	OriginPort        string
	DestinationPort   string
	Cargo             order.Cargo
	QuotationDeadline time.Time
}

// Create opens a new order for the actor's exporter company.
func (OrderDesk) Create(actor company.Actor, id kernel.UUID, draft OrderDraft, now time.Time) (*order.Order, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if actor.CompanyType() != company.TypeExporter {
		return nil, errs.NewForbiddenError("create order", "only exporter companies post orders")
	}
	return order.NewOrder(id, actor.CompanyID(), draft.OriginPort, draft.DestinationPort, draft.Cargo, draft.QuotationDeadline, now)
}

// Invite lets forwarderID quote on o. existing is the current invitation for the pair, if any.
func (OrderDesk) Invite(
	actor company.Actor,
	o *order.Order,
	forwarderID kernel.UUID,
	forwarderType company.Type,
	existing *order.Invitation,
	now time.Time,
) (*order.Invitation, error) {
	if err := requireExporterMember(actor, o, "invite forwarder"); err != nil {
		return nil, err
	}
	if forwarderType != company.TypeFreightForwarder {
		return nil, errs.NewValueIsInvalidErrorWithCause("forwarder company",
			fmt.Errorf("company type %s cannot quote", forwarderType))
	}
	if !o.Status().AcceptsQuotes() {
		return nil, errs.NewInvalidStateError("order", o.Status().String(), "invite forwarders")
	}
	if existing != nil {
		return nil, errs.NewConflictError("invitation", "already exists for this forwarder")
	}
	return order.NewInvitation(o.ID(), forwarderID, now)
}

// OpenReview moves an OPEN order into PENDING once at least one ACTIVE quote exists.
func (OrderDesk) OpenReview(actor company.Actor, o *order.Order, activeQuotes int) error {
	if err := requireExporterMember(actor, o, "review quotes"); err != nil {
		return err
	}
	if activeQuotes < 1 {
		return errs.NewInvalidStateError("order", o.Status().String(), "be reviewed without active quotes")
	}
	return o.MarkPending()
}
