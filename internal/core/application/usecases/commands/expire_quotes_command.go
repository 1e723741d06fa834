package commands

import (
	"errors"

	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

const maxExpiryBatch = 1000

var ErrExpireQuotesCommandIsNotConstructed = errors.New(
	"ExpireQuotesCommand must be created via NewExpireQuotesCommand constructor",
)

// ExpireQuotesCommand marks lapsed ACTIVE quotes on OPEN and PENDING orders as EXPIRED.
//
// Example:
//
//	cmd, _ := NewExpireQuotesCommand(200)
//	handler := NewExpireQuotesCommandHandler(quoteUoWFactory)
//	expired, err := handler.Handle(ctx, cmd)
type ExpireQuotesCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireQuotesCommand(batchSize int) (ExpireQuotesCommand, error) {
	if batchSize < 1 || batchSize > maxExpiryBatch {
		return ExpireQuotesCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, maxExpiryBatch)
	}
	return ExpireQuotesCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireQuotesCommand) Validate() error {
	return c.guard.Validate(ErrExpireQuotesCommandIsNotConstructed)
}

func (c ExpireQuotesCommand) BatchSize() int { return c.batchSize }
