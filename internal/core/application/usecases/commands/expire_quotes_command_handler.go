package commands

import (
	"context"
	"time"
)

type ExpireQuotesCommandHandler struct {
	uowFactory QuoteUoWFactory
}

func NewExpireQuotesCommandHandler(uowFactory QuoteUoWFactory) ExpireQuotesCommandHandler {
	return ExpireQuotesCommandHandler{uowFactory: uowFactory}
}

// Handle expires one batch in a single transaction and returns how many quotes changed.
func (h *ExpireQuotesCommandHandler) Handle(ctx context.Context, cmd ExpireQuotesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	quoteRepo := uow.QuoteRepository()
	lapsed, err := quoteRepo.ListLapsed(ctx, now, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	for _, q := range lapsed {
		if err = q.Expire(now); err != nil {
			return 0, err
		}
		if err = quoteRepo.Update(ctx, q); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(lapsed), nil
}
