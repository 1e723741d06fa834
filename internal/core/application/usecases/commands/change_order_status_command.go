package commands

import (
	"errors"
	"strings"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/services"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

const maxStatusReasonLength = 1000

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand is an exporter admin moving a closed order to REASSIGN or VOIDED.
type ChangeOrderStatusCommand struct {
	actor   company.Actor
	orderID kernel.UUID
	target  order.Status
	reason  string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(actor company.Actor, orderID kernel.UUID, target, reason string) (ChangeOrderStatusCommand, error) {
	status, targetErr := services.ParseTarget(target)

	reason = strings.TrimSpace(reason)
	var reasonErr error
	if len(reason) > maxStatusReasonLength {
		reasonErr = errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxStatusReasonLength)
	}

	if err := errors.Join(checkActor(actor), orderID.Validate(), targetErr, reasonErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		target:  status,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() company.Actor { return c.actor }
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }
func (c ChangeOrderStatusCommand) Reason() string       { return c.reason }
