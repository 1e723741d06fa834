package commands_test

import (
	"testing"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewQuotesCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	exporterID := kernel.NewUUID()
	actor := exporterMember(t, exporterID)
	o := orderIn(t, exporterID, order.Open, nil)
	cmd, err := commands.NewReviewQuotesCommand(actor, o.ID())
	require.NoError(t, err)
	r := newRepos()

	isHistoryRow := mock.MatchedBy(func(c order.StatusChange) bool {
		return c.OrderID == o.ID() && c.From == order.Open && c.To == order.Pending && c.ActorID == actor.UserID()
	})

	mock.InOrder(
		r.factory.On("Create").Return(r.uow).Once(),
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		r.quotes.On("CountActive", ctx, o.ID()).Return(int64(2), nil).Once(),
		r.orders.On("Update", ctx, o).Return(nil).Once(),
		r.orders.On("AddStatusChange", ctx, isHistoryRow).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewReviewQuotesCommandHandler(r.factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	r.assertExpectations(t)
}

func TestReviewQuotesCommandHandler_Handle_NoActiveQuotes(t *testing.T) {
	ctx := t.Context()
	exporterID := kernel.NewUUID()
	o := orderIn(t, exporterID, order.Open, nil)
	cmd, err := commands.NewReviewQuotesCommand(exporterMember(t, exporterID), o.ID())
	require.NoError(t, err)
	r := newRepos()

	mock.InOrder(
		r.factory.On("Create").Return(r.uow).Once(),
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		r.quotes.On("CountActive", ctx, o.ID()).Return(int64(0), nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewReviewQuotesCommandHandler(r.factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.Equal(t, order.Open, o.Status())
	r.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestReviewQuotesCommandHandler_Handle_OtherCompanyForbidden(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, kernel.NewUUID(), order.Open, nil)
	cmd, err := commands.NewReviewQuotesCommand(exporterMember(t, kernel.NewUUID()), o.ID())
	require.NoError(t, err)
	r := newRepos()

	mock.InOrder(
		r.factory.On("Create").Return(r.uow).Once(),
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		r.quotes.On("CountActive", ctx, o.ID()).Return(int64(1), nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewReviewQuotesCommandHandler(r.factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	r.assertExpectations(t)
}
