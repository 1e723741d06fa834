package natspub_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"freightdesk/internal/adapters/out/natspub"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/notification"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PublisherIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	url       string
	publisher *natspub.Publisher
}

func (suite *PublisherIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "nats:2.10-alpine",
			ExposedPorts: []string{"4222/tcp"},
			WaitingFor:   wait.ForLog("Server is ready").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "4222/tcp")
	suite.Require().NoError(err)
	suite.url = fmt.Sprintf("nats://%s:%s", host, port.Port())

	publisher, err := natspub.Connect(suite.url, "", zerolog.Nop())
	suite.Require().NoError(err)
	suite.publisher = publisher
}

func (suite *PublisherIntegrationTestSuite) TearDownSuite() {
	if suite.publisher != nil {
		suite.Require().NoError(suite.publisher.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PublisherIntegrationTestSuite) TestPublish_DeliversJSONEventOnEventSubject() {
	subscriber, err := nats.Connect(suite.url)
	suite.Require().NoError(err)
	defer subscriber.Close()

	messages := make(chan *nats.Msg, 1)
	sub, err := subscriber.ChanSubscribe("notifications.freightdesk.>", messages)
	suite.Require().NoError(err)
	defer func() { _ = sub.Unsubscribe() }()
	suite.Require().NoError(subscriber.Flush())

	quoteID := kernel.NewUUID()
	recipient := kernel.NewUUID()
	n, err := notification.New(notification.QuoteCancelled, kernel.NewUUID(), &quoteID, []kernel.UUID{recipient}, time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.publisher.Publish(context.Background(), n))

	select {
	case msg := <-messages:
		suite.Equal("notifications.freightdesk.quote_cancelled", msg.Subject)
		var event natspub.Event
		suite.Require().NoError(json.Unmarshal(msg.Data, &event))
		suite.Equal("QUOTE_CANCELLED", event.EventType)
		suite.Equal(n.OrderID.String(), event.OrderID)
		suite.Equal(quoteID.String(), event.QuoteID)
		suite.Equal([]string{recipient.String()}, event.Recipients)
	case <-time.After(5 * time.Second):
		suite.Fail("notification was not delivered")
	}
}

func (suite *PublisherIntegrationTestSuite) TestPublish_ContextWithoutDeadline() {
	n, err := notification.New(notification.OrderClosed, kernel.NewUUID(), nil, []kernel.UUID{kernel.NewUUID()}, time.Now())
	suite.Require().NoError(err)

	suite.NoError(suite.publisher.Publish(context.Background(), n))
	suite.NoError(suite.publisher.Publish(context.WithoutCancel(suite.T().Context()), n))
}

func (suite *PublisherIntegrationTestSuite) TestPublish_ContextWithDeadline() {
	n, err := notification.New(notification.OrderClosed, kernel.NewUUID(), nil, []kernel.UUID{kernel.NewUUID()}, time.Now())
	suite.Require().NoError(err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	suite.NoError(suite.publisher.Publish(ctx, n))
}

func (suite *PublisherIntegrationTestSuite) TestPublish_CancelledContext() {
	n, err := notification.New(notification.OrderClosed, kernel.NewUUID(), nil, []kernel.UUID{kernel.NewUUID()}, time.Now())
	suite.Require().NoError(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite.ErrorIs(suite.publisher.Publish(ctx, n), context.Canceled)
}

func TestPublisherIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherIntegrationTestSuite))
}
