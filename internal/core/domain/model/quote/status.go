package quote

import (
	"fmt"

	"freightdesk/internal/pkg/errs"
)

// Status is the lifecycle state of a forwarder quote.
//
//	ACTIVE ──┬──> SELECTED
//	         ├──> REJECTED
//	         ├──> CANCELLED
//	         └──> EXPIRED
//
// Only ACTIVE quotes change; no status ever returns to ACTIVE.
type Status string

const (
	Active    Status = "ACTIVE"
	Selected  Status = "SELECTED"
	Cancelled Status = "CANCELLED"
	Rejected  Status = "REJECTED"
	Expired   Status = "EXPIRED"
)

func (s Status) Validate() error {
	switch s {
	case Active, Selected, Cancelled, Rejected, Expired:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("quote status", fmt.Errorf("%q is not a valid quote status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsFinal reports whether the quote can no longer change.
func (s Status) IsFinal() bool {
	return s != Active
}
