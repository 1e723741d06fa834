package commands_test

import (
	"bytes"
	"errors"
	"testing"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderStatusCommandHandler_Handle_VoidDeletesEveryInvoice(t *testing.T) {
	ctx := t.Context()
	exporterID := kernel.NewUUID()
	actor := exporterAdmin(t, exporterID)
	selected := kernel.NewUUID()
	o := orderIn(t, exporterID, order.Closed, &selected)
	current := finalInvoice(t, selected, "invoices/FD-20261017-ABCDEF/aaaa/document.pdf", false)
	orphan := finalInvoice(t, kernel.NewUUID(), "invoices/FD-20261017-ABCDEF/bbbb/document.pdf", false)

	cmd, err := commands.NewChangeOrderStatusCommand(actor, o.ID(), "VOIDED", "duplicate")
	require.NoError(t, err)
	r := newRepos()
	storage := new(Storage)

	isHistoryRow := mock.MatchedBy(func(c order.StatusChange) bool {
		return c.From == order.Closed && c.To == order.Voided && c.Reason == "duplicate" && c.ActorID == actor.UserID()
	})

	mock.InOrder(
		r.factory.On("Create").Return(r.uow).Once(),
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		r.documents.On("ListFinalInvoicesByOrder", ctx, o.ID()).Return([]*invoice.Document{current, orphan}, nil).Once(),
		r.documents.On("Delete", ctx, []kernel.UUID{current.ID(), orphan.ID()}).Return(nil).Once(),
		r.orders.On("Update", ctx, o).Return(nil).Once(),
		r.orders.On("AddStatusChange", ctx, isHistoryRow).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		storage.On("Delete", detachedCtx, current.Path()).Return(nil).Once(),
		storage.On("Delete", detachedCtx, orphan.Path()).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(r.factory, storage, zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Voided, o.Status())
	storage.AssertExpectations(t)
	r.assertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ReassignKeepsOtherInvoices(t *testing.T) {
	ctx := t.Context()
	exporterID := kernel.NewUUID()
	selected := kernel.NewUUID()
	o := orderIn(t, exporterID, order.Closed, &selected)
	current := finalInvoice(t, selected, "invoices/FD-20261017-ABCDEF/aaaa/document.pdf", true)
	other := finalInvoice(t, kernel.NewUUID(), "invoices/FD-20261017-ABCDEF/bbbb/document.pdf", false)

	cmd, err := commands.NewChangeOrderStatusCommand(exporterAdmin(t, exporterID), o.ID(), "REASSIGN", "")
	require.NoError(t, err)
	r := newRepos()
	storage := new(Storage)

	mock.InOrder(
		r.factory.On("Create").Return(r.uow).Once(),
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		r.documents.On("ListFinalInvoicesByOrder", ctx, o.ID()).Return([]*invoice.Document{current, other}, nil).Once(),
		r.documents.On("Delete", ctx, []kernel.UUID{current.ID()}).Return(nil).Once(),
		r.orders.On("Update", ctx, o).Return(nil).Once(),
		r.orders.On("AddStatusChange", ctx, mock.Anything).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		storage.On("Delete", detachedCtx, current.Path()).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(r.factory, storage, zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Reassign, o.Status())
	storage.AssertNotCalled(t, "Delete", mock.Anything, other.Path())
	storage.AssertExpectations(t)
	r.assertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CleanupFailureIsLogged(t *testing.T) {
	ctx := t.Context()
	exporterID := kernel.NewUUID()
	selected := kernel.NewUUID()
	o := orderIn(t, exporterID, order.Closed, &selected)
	current := finalInvoice(t, selected, "invoices/FD-20261017-ABCDEF/aaaa/document.pdf", false)

	cmd, err := commands.NewChangeOrderStatusCommand(exporterAdmin(t, exporterID), o.ID(), "VOIDED", "")
	require.NoError(t, err)
	r := newRepos()
	storage := new(Storage)

	r.factory.On("Create").Return(r.uow).Once()
	r.uow.On("Begin", ctx).Return(nil).Once()
	r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	r.documents.On("ListFinalInvoicesByOrder", ctx, o.ID()).Return([]*invoice.Document{current}, nil).Once()
	r.documents.On("Delete", ctx, []kernel.UUID{current.ID()}).Return(nil).Once()
	r.orders.On("Update", ctx, o).Return(nil).Once()
	r.orders.On("AddStatusChange", ctx, mock.Anything).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()
	storage.On("Delete", detachedCtx, current.Path()).Return(errors.New("bucket unavailable")).Once()

	var logs bytes.Buffer
	handler := commands.NewChangeOrderStatusCommandHandler(r.factory, storage, zerolog.New(&logs))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "bucket unavailable")
	assert.Contains(t, logs.String(), current.Path())
	r.assertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_MemberIsForbidden(t *testing.T) {
	ctx := t.Context()
	exporterID := kernel.NewUUID()
	selected := kernel.NewUUID()
	o := orderIn(t, exporterID, order.Closed, &selected)

	cmd, err := commands.NewChangeOrderStatusCommand(exporterMember(t, exporterID), o.ID(), "VOIDED", "")
	require.NoError(t, err)
	r := newRepos()
	storage := new(Storage)

	mock.InOrder(
		r.factory.On("Create").Return(r.uow).Once(),
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		r.documents.On("ListFinalInvoicesByOrder", ctx, o.ID()).Return([]*invoice.Document{}, nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(r.factory, storage, zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	assert.Equal(t, order.Closed, o.Status())
	r.assertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ReassignFromReassignIsInvalid(t *testing.T) {
	ctx := t.Context()
	exporterID := kernel.NewUUID()
	selected := kernel.NewUUID()
	o := orderIn(t, exporterID, order.Reassign, &selected)

	cmd, err := commands.NewChangeOrderStatusCommand(exporterAdmin(t, exporterID), o.ID(), "REASSIGN", "")
	require.NoError(t, err)
	r := newRepos()

	mock.InOrder(
		r.factory.On("Create").Return(r.uow).Once(),
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		r.documents.On("ListFinalInvoicesByOrder", ctx, o.ID()).Return([]*invoice.Document{}, nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(r.factory, new(Storage), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	r.documents.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}
