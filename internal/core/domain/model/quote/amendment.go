package quote

import (
	"errors"
	"strings"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
)

const maxReasonLength = 1000

// Amendment is an append-only audit row written whenever an ACTIVE quote's price changes.
type Amendment struct {
	ID            kernel.UUID
	QuoteID       kernel.UUID
	PreviousPrice kernel.Money
	NewPrice      kernel.Money
	Reason        string
	CreatedAt     time.Time
}

func NewAmendment(quoteID kernel.UUID, previous, next kernel.Money, reason string, now time.Time) (Amendment, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if len(reason) > maxReasonLength {
		reasonErr = errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxReasonLength)
	}
	if err := errors.Join(quoteID.Validate(), previous.Validate(), next.Validate(), reasonErr); err != nil {
		return Amendment{}, err
	}

	return Amendment{
		ID:            kernel.NewUUID(),
		QuoteID:       quoteID,
		PreviousPrice: previous,
		NewPrice:      next,
		Reason:        reason,
		CreatedAt:     now.UTC(),
	}, nil
}
