package commands_test

import (
	"testing"
	"time"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	actor := exporterMember(t, kernel.NewUUID())
	orderID := kernel.NewUUID()
	deadline := time.Now().Add(48 * time.Hour)
	cargo := order.Cargo{Description: "coffee", WeightKg: 800}

	cmd, err := commands.NewCreateOrderCommand(actor, orderID, "BRSSZ", "DEHAM", cargo, deadline)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, actor, cmd.Actor())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, "BRSSZ", cmd.OriginPort())
	assert.Equal(t, "DEHAM", cmd.DestinationPort())
	assert.Equal(t, cargo, cmd.Cargo())
	assert.Equal(t, deadline, cmd.QuotationDeadline())
}

func TestNewCreateOrderCommand_RejectsAnonymousCaller(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(company.Actor{}, kernel.NewUUID(), "BRSSZ", "DEHAM",
		order.Cargo{Description: "coffee", WeightKg: 800}, time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

func TestNewCreateOrderCommand_RejectsEmptyOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(exporterMember(t, kernel.NewUUID()), kernel.UUID{}, "BRSSZ", "DEHAM",
		order.Cargo{Description: "coffee", WeightKg: 800}, time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
