package services_test

import (
	"testing"
	"time"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newActor(t *testing.T, companyID kernel.UUID, role company.Role, companyType company.Type) company.Actor {
	t.Helper()
	a, err := company.NewActor(kernel.NewUUID(), companyID, kernel.NewUUID(), role, companyType)
	require.NoError(t, err)
	return a
}

func orderIn(t *testing.T, exporterID kernel.UUID, status order.Status, selected *kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), "FD-20261017-ABCDEF", exporterID, "CNSHA", "NLRTM",
		order.Cargo{Description: "machine parts", WeightKg: 1200}, status, selected,
		testNow.Add(72*time.Hour), testNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func terms(t *testing.T, amount string) quote.Terms {
	t.Helper()
	price, err := kernel.MoneyFromString(amount, "USD")
	require.NoError(t, err)
	return quote.Terms{Price: price, TransitDays: 21, ValidUntil: testNow.Add(10 * 24 * time.Hour)}
}

func quoteIn(t *testing.T, orderID, forwarderID kernel.UUID, status quote.Status) *quote.Quote {
	t.Helper()
	q, err := quote.RestoreQuote(kernel.NewUUID(), orderID, forwarderID, terms(t, "1000"), status, testNow, testNow)
	require.NoError(t, err)
	return q
}

func invitationFor(t *testing.T, orderID, forwarderID kernel.UUID, status order.InvitationStatus) *order.Invitation {
	t.Helper()
	inv, err := order.RestoreInvitation(orderID, forwarderID, status, testNow)
	require.NoError(t, err)
	return inv
}

func finalInvoice(t *testing.T, quoteID kernel.UUID, path string, locked bool) *invoice.Document {
	t.Helper()
	doc, err := invoice.NewFinalInvoice(kernel.NewUUID(), quoteID, path,
		invoice.File{Name: "invoice.pdf", Size: 100}, kernel.NewUUID(), testNow)
	require.NoError(t, err)
	if locked {
		_, err = doc.Accept(kernel.NewUUID(), testNow)
		require.NoError(t, err)
	}
	return doc
}
