package order

import (
	"fmt"

	"freightdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment order.
// It implements a state machine with defined transitions to ensure
// orders follow the marketplace workflow.
//
// State transitions:
//
//	OPEN ──> PENDING ──> CLOSED ──┬──> REASSIGN ──┐
//	(bidding)  (review)  (selected)│               │
//	                               └───────────────┴──> VOIDED
//
// OPEN and PENDING accept quotes, CLOSED carries the selected quote, REASSIGN and VOIDED
// are administrative outcomes. VOIDED is final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status: forwarders may quote.
	Open

	// Pending means the exporter is reviewing quotes and may select one.
	Pending

	// Closed means a quote has been selected.
	Closed

	// Reassign means an admin pulled the order back from the selected forwarder.
	Reassign

	// Voided permanently terminates the order.
	Voided
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "UNKNOWN",
		Open:     "OPEN",
		Pending:  "PENDING",
		Closed:   "CLOSED",
		Reassign: "REASSIGN",
		Voided:   "VOIDED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:     "OPEN",
		Pending:  "PENDING",
		Closed:   "CLOSED",
		Reassign: "REASSIGN",
		Voided:   "VOIDED",
	}
}

// ParseStatus converts a persisted or wire representation ("OPEN", "CLOSED", ...) to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the five lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// AcceptsQuotes reports whether forwarders may submit or amend quotes.
func (s Status) AcceptsQuotes() bool {
	return s == Open || s == Pending
}

// ValidateCanHaveSelectedQuote enforces the selected-quote invariant:
//   - OPEN and PENDING orders must not reference a selected quote
//   - CLOSED and REASSIGN orders must reference one
//   - VOIDED orders may retain a stale reference for audit
func (s Status) ValidateCanHaveSelectedQuote(selected bool) error {
	if selected && (s == Open || s == Pending) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a selected quote", s.String()),
		)
	}

	if !selected && (s == Closed || s == Reassign) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no selected quote", s.String()),
		)
	}

	return nil
}

// MarkPending transitions OPEN -> PENDING.
func (s Status) MarkPending() (Status, error) {
	if s != Open {
		return Unknown, errs.NewInvalidStateError("order", s.String(), "move to review")
	}
	return Pending, nil
}

// Close transitions PENDING -> CLOSED. Only the selection transition calls it.
func (s Status) Close() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateError("order", s.String(), "select a quote")
	}
	return Closed, nil
}

// Reassign transitions CLOSED -> REASSIGN.
func (s Status) Reassign() (Status, error) {
	if s != Closed {
		return Unknown, errs.NewInvalidStateError("order", s.String(), "reassign")
	}
	return Reassign, nil
}

// Void transitions CLOSED or REASSIGN -> VOIDED.
func (s Status) Void() (Status, error) {
	if s != Closed && s != Reassign {
		return Unknown, errs.NewInvalidStateError("order", s.String(), "void")
	}
	return Voided, nil
}
