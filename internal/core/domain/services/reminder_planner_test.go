package services_test

import (
	"testing"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderPlanner_DueEvent(t *testing.T) {
	planner := services.NewReminderPlanner()
	o := orderIn(t, kernel.NewUUID(), order.Open, nil) // deadline testNow+72h

	tests := []struct {
		name  string
		now   time.Time
		event notification.Event
		due   bool
	}{
		{"more than a week out", testNow.Add(-7 * 24 * time.Hour), "", false},
		{"inside the week", testNow, notification.OrderDue7Days, true},
		{"inside the last day", testNow.Add(60 * time.Hour), notification.OrderDue24Hours, true},
		{"deadline passed", testNow.Add(73 * time.Hour), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, due := planner.DueEvent(o, tt.now)

			assert.Equal(t, tt.due, due)
			assert.Equal(t, tt.event, event)
		})
	}
}

func TestReminderPlanner_Plan(t *testing.T) {
	planner := services.NewReminderPlanner()
	exporterID := kernel.NewUUID()
	invited, accepted, rejected := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	t.Run("notifies exporter and forwarders still quoting", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Open, nil)
		invitations := []*order.Invitation{
			invitationFor(t, o.ID(), invited, order.InvitationInvited),
			invitationFor(t, o.ID(), accepted, order.InvitationAccepted),
			invitationFor(t, o.ID(), rejected, order.InvitationRejected),
		}

		n, due, err := planner.Plan(o, invitations, testNow)

		require.NoError(t, err)
		require.True(t, due)
		assert.Equal(t, notification.OrderDue7Days, n.Event)
		assert.Equal(t, []kernel.UUID{exporterID, invited, accepted}, n.Recipients)
		assert.False(t, n.IsSent())
	})

	t.Run("orders under review get no reminder", func(t *testing.T) {
		o := orderIn(t, exporterID, order.Pending, nil)

		_, due, err := planner.Plan(o, nil, testNow)

		require.NoError(t, err)
		assert.False(t, due)
	})
}
