package wire

import (
	"context"
	"testing"
	"time"

	appNotification "github.com/chatapp/backend/internal/application/notification"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/chatapp/backend/internal/infrastructure/eventbus"
	infraNotification "github.com/chatapp/backend/internal/infrastructure/notification"
	"github.com/chatapp/backend/internal/infrastructure/push"
	"github.com/chatapp/backend/internal/infrastructure/websocket"
	"github.com/chatapp/backend/internal/interfaces/http"
	"github.com/chatapp/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *appNotification.Service) {
	t.Helper()

	cfg := config.Default()
	cfg.Server.HTTPPort = "127.0.0.1:0"

	hub := websocket.NewHub(&cfg.WebSocket)
	bus := eventbus.NewEventBus()
	domainSvc := notification.NewService()
	svc := appNotification.NewService(domainSvc, push.NewLogProvider(), bus, &cfg.Push)
	deliverySvc := appNotification.NewDeliveryService(infraNotification.NewMemoryRepository(&cfg.Storage), domainSvc)

	srv := http.NewServer(
		&cfg.Server,
		&cfg.CORS,
		handler.NewRootHandler(),
		handler.NewNotificationHandler(svc, deliverySvc),
		handler.NewWebSocketHandler(hub, &cfg.WebSocket),
	)

	return NewApp(srv, hub, bus, deliverySvc), svc
}

func TestApp_StartStop_RecordsDeliveries(t *testing.T) {
	app, svc := newTestApp(t)

	require.NoError(t, app.Start(nil))

	_, err := svc.Send(context.Background(), &appNotification.SendNotificationDTO{
		Token: "abc",
		Title: "Hi",
		Body:  "Hello",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		deliveries, err := app.deliveryService.ListRecent(context.Background(), 0)
		return err == nil && len(deliveries) == 1
	}, time.Second, 10*time.Millisecond)

	assert.NoError(t, app.Stop())

	select {
	case err := <-app.Errors():
		t.Fatalf("unexpected server error: %v", err)
	default:
	}
}

func TestApp_Stop_Twice(t *testing.T) {
	app, _ := newTestApp(t)

	require.NoError(t, app.Start(nil))
	assert.NoError(t, app.Stop())
	assert.NotPanics(t, func() { _ = app.Stop() })
}
