package commands

import (
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/guard"
)

var ErrReviewQuotesCommandIsNotConstructed = errors.New(
	"ReviewQuotesCommand must be created via NewReviewQuotesCommand constructor",
)

// ReviewQuotesCommand closes bidding on an OPEN order so the exporter can select a quote.
type ReviewQuotesCommand struct {
	actor   company.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReviewQuotesCommand(actor company.Actor, orderID kernel.UUID) (ReviewQuotesCommand, error) {
	if err := errors.Join(checkActor(actor), orderID.Validate()); err != nil {
		return ReviewQuotesCommand{}, err
	}
	return ReviewQuotesCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReviewQuotesCommand) Validate() error {
	return c.guard.Validate(ErrReviewQuotesCommandIsNotConstructed)
}

func (c ReviewQuotesCommand) Actor() company.Actor { return c.actor }
func (c ReviewQuotesCommand) OrderID() kernel.UUID { return c.orderID }
