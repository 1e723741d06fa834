package services

import (
	"fmt"
	"strings"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/pkg/errs"
)

// Compensation is a cleanup step executed after the transition commits. Failures are
// logged by the executor and never undo the transition.
type Compensation struct {
	ObjectPath string
}

// StatusChangeResult lists what the caller persists in one transaction and the
// compensations it runs afterwards.
type StatusChangeResult struct {
	Change           order.StatusChange
	RemovedDocuments []kernel.UUID
	Compensations    []Compensation
}

// StatusChanger implements the administrative REASSIGN and VOIDED transitions.
//
// REASSIGN (from CLOSED) drops the final invoices of the selected quote. VOIDED (from
// CLOSED or REASSIGN) drops the final invoices of every quote on the order.
type StatusChanger struct{}

func NewStatusChanger() StatusChanger {
	return StatusChanger{}
}

// ParseTarget accepts the two administrative target statuses.
func ParseTarget(s string) (order.Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case order.Reassign.String():
		return order.Reassign, nil
	case order.Voided.String():
		return order.Voided, nil
	default:
		return order.Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not REASSIGN or VOIDED", s))
	}
}

// Change applies target to o. invoices must hold every FINAL_INVOICE attached to any
// quote of the order.
func (StatusChanger) Change(
	actor company.Actor,
	o *order.Order,
	target order.Status,
	reason string,
	invoices []*invoice.Document,
	now time.Time,
) (StatusChangeResult, error) {
	if err := o.Validate(); err != nil {
		return StatusChangeResult{}, err
	}
	if err := requireExporterAdmin(actor, o, "change order status"); err != nil {
		return StatusChangeResult{}, err
	}

	from := o.Status()

	var (
		next  order.Status
		apply func() error
		err   error
	)
	switch target {
	case order.Reassign:
		next, err = from.Reassign()
		apply = o.Reassign
	case order.Voided:
		next, err = from.Void()
		apply = o.Void
	default:
		err = errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not REASSIGN or VOIDED", target))
	}
	if err != nil {
		return StatusChangeResult{}, err
	}

	change, err := order.NewStatusChange(o.ID(), from, next, actor.UserID(), reason, now)
	if err != nil {
		return StatusChangeResult{}, err
	}

	var doomed []*invoice.Document
	for _, doc := range invoices {
		if target == order.Voided || o.IsSelectedQuote(doc.QuoteID()) {
			doomed = append(doomed, doc)
		}
	}

	if err = apply(); err != nil {
		return StatusChangeResult{}, err
	}

	result := StatusChangeResult{Change: change}
	for _, doc := range doomed {
		result.RemovedDocuments = append(result.RemovedDocuments, doc.ID())
		if doc.Path() != "" {
			result.Compensations = append(result.Compensations, Compensation{ObjectPath: doc.Path()})
		}
	}
	return result, nil
}
