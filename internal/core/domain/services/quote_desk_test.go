package services_test

import (
	"testing"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/core/domain/services"
	"freightdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteDesk_Submit(t *testing.T) {
	desk := services.NewQuoteDesk()
	exporterID, forwarderID := kernel.NewUUID(), kernel.NewUUID()
	forwarder := newActor(t, forwarderID, company.RoleMember, company.TypeFreightForwarder)

	t.Run("should create quote for invited forwarder", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Open, nil)
		inv := invitationFor(t, o.ID(), forwarderID, order.InvitationInvited)

		sub, err := desk.Submit(forwarder, o, inv, nil, terms(t, "900"), "", testNow)

		require.NoError(t, err)
		assert.True(t, sub.Created)
		assert.Nil(t, sub.Amendment)
		assert.True(t, sub.Quote.IsOwnedBy(forwarderID))
		assert.True(t, sub.Quote.BelongsTo(o.ID()))
		assert.Equal(t, quote.Active, sub.Quote.Status())
	})

	t.Run("should amend the existing active quote instead of duplicating", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Pending, nil)
		inv := invitationFor(t, o.ID(), forwarderID, order.InvitationAccepted)
		existing := quoteIn(t, o.ID(), forwarderID, quote.Active)

		sub, err := desk.Submit(forwarder, o, inv, existing, terms(t, "850"), "better rate", testNow)

		require.NoError(t, err)
		assert.False(t, sub.Created)
		assert.Same(t, existing, sub.Quote)
		require.NotNil(t, sub.Amendment)
		assert.Equal(t, "1000.00 USD", sub.Amendment.PreviousPrice.String())
		assert.Equal(t, "850.00 USD", sub.Amendment.NewPrice.String())
	})

	t.Run("should forbid uninvited and rejected forwarders", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Open, nil)

		_, err := desk.Submit(forwarder, o, nil, nil, terms(t, "900"), "", testNow)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

		rejected := invitationFor(t, o.ID(), forwarderID, order.InvitationRejected)
		_, err = desk.Submit(forwarder, o, rejected, nil, terms(t, "900"), "", testNow)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

		otherInvite := invitationFor(t, o.ID(), kernel.NewUUID(), order.InvitationInvited)
		_, err = desk.Submit(forwarder, o, otherInvite, nil, terms(t, "900"), "", testNow)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("should refuse quotes on closed order", func(t *testing.T) {
		selected := kernel.NewUUID()
		o := orderIn(t, exporterID, order.Closed, &selected)
		inv := invitationFor(t, o.ID(), forwarderID, order.InvitationInvited)

		_, err := desk.Submit(forwarder, o, inv, nil, terms(t, "900"), "", testNow)

		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	})

	t.Run("should report missing fields as validation", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Open, nil)
		inv := invitationFor(t, o.ID(), forwarderID, order.InvitationInvited)

		_, err := desk.Submit(forwarder, o, inv, nil, quote.Terms{}, "", testNow)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestQuoteDesk_Amend(t *testing.T) {
	desk := services.NewQuoteDesk()
	exporterID, forwarderID := kernel.NewUUID(), kernel.NewUUID()
	forwarder := newActor(t, forwarderID, company.RoleMember, company.TypeFreightForwarder)

	t.Run("should forbid amending a quote of another forwarder", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Open, nil)
		inv := invitationFor(t, o.ID(), forwarderID, order.InvitationInvited)
		q := quoteIn(t, o.ID(), kernel.NewUUID(), quote.Active)

		_, err := desk.Amend(forwarder, o, inv, q, terms(t, "800"), "", testNow)

		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("should refuse amending a rejected quote", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Pending, nil)
		inv := invitationFor(t, o.ID(), forwarderID, order.InvitationInvited)
		q := quoteIn(t, o.ID(), forwarderID, quote.Rejected)

		_, err := desk.Amend(forwarder, o, inv, q, terms(t, "800"), "", testNow)

		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
		assert.Equal(t, "1000.00 USD", q.Price().String())
	})
}

func TestQuoteDesk_Cancel(t *testing.T) {
	desk := services.NewQuoteDesk()
	exporterID, forwarderID := kernel.NewUUID(), kernel.NewUUID()
	forwarder := newActor(t, forwarderID, company.RoleMember, company.TypeFreightForwarder)

	t.Run("should cancel active quote and notify exporter", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Open, nil)
		q := quoteIn(t, o.ID(), forwarderID, quote.Active)

		n, err := desk.Cancel(forwarder, o, q, testNow)

		require.NoError(t, err)
		assert.Equal(t, quote.Cancelled, q.Status())
		assert.Equal(t, notification.QuoteCancelled, n.Event)
		assert.True(t, n.Event.IsImmediate())
		assert.Equal(t, []kernel.UUID{exporterID}, n.Recipients)
	})

	t.Run("should refuse while order is pending", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Pending, nil)
		q := quoteIn(t, o.ID(), forwarderID, quote.Active)

		_, err := desk.Cancel(forwarder, o, q, testNow)

		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
		assert.Equal(t, quote.Active, q.Status())
	})

	t.Run("should refuse non active quote", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Open, nil)
		q := quoteIn(t, o.ID(), forwarderID, quote.Cancelled)

		_, err := desk.Cancel(forwarder, o, q, testNow)

		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	})

	t.Run("should forbid non owners", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Open, nil)
		q := quoteIn(t, o.ID(), kernel.NewUUID(), quote.Active)

		_, err := desk.Cancel(forwarder, o, q, testNow)

		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
		assert.Equal(t, quote.Active, q.Status())
	})
}
