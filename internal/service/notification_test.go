package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/queue"
	"github.com/jconover/k8s-microservices-platform/internal/store/memory"
)

type fakeBroker struct {
	published [][]byte
	queueName string
}

func (b *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.queueName = queueName
	b.published = append(b.published, message)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func newNotificationService() (*NotificationService, *memory.HistoryRepository, *fakeBroker) {
	historyRepo := memory.NewHistoryRepository()
	broker := &fakeBroker{}
	svc := NewNotificationService(historyRepo, broker, zap.NewNop().Sugar())
	return svc, historyRepo, broker
}

func TestProcessAppendsToHistory(t *testing.T) {
	svc, historyRepo, _ := newNotificationService()

	message := []byte(`{"type":"sms","user":"alice"}`)
	require.NoError(t, svc.Process(context.Background(), message))

	recent, err := svc.Recent(context.Background())
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.JSONEq(t, string(message), string(recent[0]))
	require.Equal(t, 1, historyRepo.Len())
}

func TestProcessRejectsMalformedPayload(t *testing.T) {
	svc, historyRepo, _ := newNotificationService()

	err := svc.Process(context.Background(), []byte("not json"))
	require.Error(t, err)
	require.Equal(t, 0, historyRepo.Len(), "failed messages must not reach the ledger")
}

func TestHistoryNeverExceedsCap(t *testing.T) {
	svc, historyRepo, _ := newNotificationService()
	ctx := context.Background()

	for i := 0; i < 1500; i++ {
		message := fmt.Sprintf(`{"type":"email","seq":%d}`, i)
		require.NoError(t, svc.Process(ctx, []byte(message)))
	}

	require.Equal(t, 1000, historyRepo.Len())

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 100)

	var newest struct {
		Seq int `json:"seq"`
	}
	require.NoError(t, json.Unmarshal(recent[0], &newest))
	require.Equal(t, 1499, newest.Seq, "read-range is newest first")

	var oldestReturned struct {
		Seq int `json:"seq"`
	}
	require.NoError(t, json.Unmarshal(recent[99], &oldestReturned))
	require.Equal(t, 1400, oldestReturned.Seq)
}

func TestPublishAssignsMessageID(t *testing.T) {
	svc, _, broker := newNotificationService()

	id, err := svc.Publish(context.Background(), map[string]interface{}{"type": "push"})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, "notifications", broker.queueName)
	require.Len(t, broker.published, 1)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(broker.published[0], &sent))
	require.Equal(t, id, sent["id"])
	require.Equal(t, "push", sent["type"])
}
