package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/queue"
	"github.com/jconover/k8s-microservices-platform/internal/service"
	"github.com/jconover/k8s-microservices-platform/internal/store/memory"
)

type recordingBroker struct {
	published [][]byte
}

func (b *recordingBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.published = append(b.published, message)
	return nil
}

func (b *recordingBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *recordingBroker) Close() error { return nil }

func newTestApp() (*application, *recordingBroker, *service.NotificationService) {
	logger := zap.NewNop().Sugar()
	broker := &recordingBroker{}
	svc := service.NewNotificationService(memory.NewHistoryRepository(), broker, logger)

	app := &application{
		config:              config{addr: ":5001"},
		logger:              logger,
		broker:              broker,
		notificationService: svc,
	}

	return app, broker, svc
}

func TestHealthAlwaysHealthy(t *testing.T) {
	app, _, _ := newTestApp()
	mux := app.mount()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy","service":"notification-service"}`, rec.Body.String())
}

func TestRecentNotificationsNewestFirst(t *testing.T) {
	app, _, svc := newTestApp()
	mux := app.mount()

	require.NoError(t, svc.Process(context.Background(), []byte(`{"type":"email","seq":1}`)))
	require.NoError(t, svc.Process(context.Background(), []byte(`{"type":"sms","seq":2}`)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notifications/recent", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var notifications []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 2)
	require.Equal(t, float64(2), notifications[0]["seq"])
}

func TestPublishNotification(t *testing.T) {
	app, broker, _ := newTestApp()
	mux := app.mount()

	body := bytes.NewReader([]byte(`{"type":"push","user":"alice"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/notifications", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "queued", response["status"])
	require.NotEmpty(t, response["id"])
	require.Len(t, broker.published, 1)
}

func TestPublishRejectsEmptyBody(t *testing.T) {
	app, broker, _ := newTestApp()
	mux := app.mount()

	req := httptest.NewRequest(http.MethodPost, "/api/notifications", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, broker.published)
}
