package order

import (
	"errors"
	"strings"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
)

const maxReasonLength = 1000

// StatusChange is one append-only row of an order's status history.
type StatusChange struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	From      Status
	To        Status
	ActorID   kernel.UUID
	Reason    string
	ChangedAt time.Time
}

// NewStatusChange records a transition performed by actorID.
func NewStatusChange(orderID kernel.UUID, from, to Status, actorID kernel.UUID, reason string, now time.Time) (StatusChange, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if len(reason) > maxReasonLength {
		reasonErr = errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxReasonLength)
	}

	if err := errors.Join(orderID.Validate(), from.Validate(), to.Validate(), actorID.Validate(), reasonErr); err != nil {
		return StatusChange{}, err
	}

	return StatusChange{
		ID:        kernel.NewUUID(),
		OrderID:   orderID,
		From:      from,
		To:        to,
		ActorID:   actorID,
		Reason:    reason,
		ChangedAt: now.UTC(),
	}, nil
}
