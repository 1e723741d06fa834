package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

const maxPortLength = 120

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Cargo describes what is being shipped.
type Cargo struct {
	Description   string
	WeightKg      float64
	VolumeCbm     float64
	ContainerType string
}

func (c Cargo) validate() error {
	var validationErrs []error
	if strings.TrimSpace(c.Description) == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("cargo description"))
	}
	if c.WeightKg <= 0 {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"cargo weight", fmt.Errorf("%v is not greater than 0", c.WeightKg)))
	}
	if c.VolumeCbm < 0 {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"cargo volume", fmt.Errorf("%v is negative", c.VolumeCbm)))
	}
	return errors.Join(validationErrs...)
}

// Order is the aggregate root for a shipment request posted by an exporter.
//
// Order follows these invariants:
//   - Must have a valid identifier, reference number and exporter company
//   - Origin and destination ports are required
//   - selectedQuoteID is set iff status is CLOSED or REASSIGN (VOIDED may keep it)
//   - Status transitions follow Status; orders are never deleted, only voided
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id                kernel.UUID
	reference         string
	exporterID        kernel.UUID
	originPort        string
	destinationPort   string
	cargo             Cargo
	status            Status
	selectedQuoteID   *kernel.UUID
	quotationDeadline time.Time
	createdAt         time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an OPEN order. The quotation deadline must lie after now.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), exporterID, "CNSHA", "NLRTM",
//	    order.Cargo{Description: "machine parts", WeightKg: 1200}, now.Add(72*time.Hour), now)
func NewOrder(
	id kernel.UUID,
	exporterID kernel.UUID,
	originPort, destinationPort string,
	cargo Cargo,
	quotationDeadline time.Time,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Open,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	var deadlineErr error
	if !quotationDeadline.After(now) {
		deadlineErr = errs.NewValueIsInvalidErrorWithCause(
			"quotation deadline", fmt.Errorf("%s is not in the future", quotationDeadline.Format(time.RFC3339)))
	}

	if err := errors.Join(
		o.setID(id),
		o.setExporter(exporterID),
		o.setPorts(originPort, destinationPort),
		o.setCargo(cargo),
		deadlineErr,
	); err != nil {
		return nil, err
	}

	o.reference = NewReference(id, now)
	o.quotationDeadline = quotationDeadline.UTC()
	return o, nil
}

// RestoreOrder rebuilds an order from persistence, re-checking every invariant.
func RestoreOrder(
	id kernel.UUID,
	reference string,
	exporterID kernel.UUID,
	originPort, destinationPort string,
	cargo Cargo,
	status Status,
	selectedQuoteID *kernel.UUID,
	quotationDeadline time.Time,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		quotationDeadline: quotationDeadline,
		createdAt:         createdAt,
		guard:             guard.NewConstructorGuard(),
	}

	var referenceErr error
	if strings.TrimSpace(reference) == "" {
		referenceErr = errs.NewValueIsRequiredError("reference number")
	}

	if err := errors.Join(
		o.setID(id),
		referenceErr,
		o.setExporter(exporterID),
		o.setPorts(originPort, destinationPort),
		o.setCargo(cargo),
		o.setStatus(status, selectedQuoteID),
	); err != nil {
		return nil, err
	}

	o.reference = reference
	return o, nil
}

// NewReference derives the human facing reference number, e.g. FD-20261017-6BA7B8.
func NewReference(id kernel.UUID, createdAt time.Time) string {
	return fmt.Sprintf("FD-%s-%s", createdAt.UTC().Format("20060102"), strings.ToUpper(id.ShortID()[:6]))
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Reference() string            { return o.reference }
func (o *Order) ExporterID() kernel.UUID      { return o.exporterID }
func (o *Order) OriginPort() string           { return o.originPort }
func (o *Order) DestinationPort() string      { return o.destinationPort }
func (o *Order) Cargo() Cargo                 { return o.cargo }
func (o *Order) Status() Status               { return o.status }
func (o *Order) QuotationDeadline() time.Time { return o.quotationDeadline }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }

// SelectedQuote returns the selected quote identifier or nil.
func (o *Order) SelectedQuote() *kernel.UUID {
	return o.selectedQuoteID
}

// IsSelectedQuote reports whether quoteID is the order's selected quote.
func (o *Order) IsSelectedQuote(quoteID kernel.UUID) bool {
	return o.selectedQuoteID != nil && o.selectedQuoteID.IsEqual(quoteID)
}

// MarkPending moves an OPEN order into review.
func (o *Order) MarkPending() error {
	next, err := o.status.MarkPending()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Close records quoteID as selected and moves PENDING -> CLOSED.
func (o *Order) Close(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}

	next, err := o.status.Close()
	if err != nil {
		return err
	}

	o.status = next
	o.selectedQuoteID = &quoteID
	return nil
}

// Reassign moves CLOSED -> REASSIGN. The selected quote reference is kept so the
// previously selected forwarder's invoice can be cleaned up.
func (o *Order) Reassign() error {
	next, err := o.status.Reassign()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Void moves CLOSED or REASSIGN -> VOIDED.
func (o *Order) Void() error {
	next, err := o.status.Void()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// DeadlineWithin reports whether an OPEN order's quotation deadline falls in (now, now+window].
func (o *Order) DeadlineWithin(now time.Time, window time.Duration) bool {
	if o.status != Open || !o.quotationDeadline.After(now) {
		return false
	}
	return !o.quotationDeadline.After(now.Add(window))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setExporter(exporterID kernel.UUID) error {
	if err := exporterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("exporter company", err)
	}
	o.exporterID = exporterID
	return nil
}

func (o *Order) setPorts(origin, destination string) error {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)

	var validationErrs []error
	for name, port := range map[string]string{"origin port": origin, "destination port": destination} {
		switch {
		case port == "":
			validationErrs = append(validationErrs, errs.NewValueIsRequiredError(name))
		case len(port) > maxPortLength:
			validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError(name, len(port), 1, maxPortLength))
		}
	}
	if err := errors.Join(validationErrs...); err != nil {
		return err
	}

	o.originPort = origin
	o.destinationPort = destination
	return nil
}

func (o *Order) setCargo(cargo Cargo) error {
	if err := cargo.validate(); err != nil {
		return err
	}
	cargo.Description = strings.TrimSpace(cargo.Description)
	cargo.ContainerType = strings.TrimSpace(cargo.ContainerType)
	o.cargo = cargo
	return nil
}

func (o *Order) setStatus(status Status, selectedQuoteID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveSelectedQuote(selectedQuoteID != nil); err != nil {
		return err
	}
	if selectedQuoteID != nil {
		if err := selectedQuoteID.Validate(); err != nil {
			return err
		}
	}
	o.status = status
	o.selectedQuoteID = selectedQuoteID
	return nil
}
