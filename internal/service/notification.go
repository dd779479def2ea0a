package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/domain"
	"github.com/jconover/k8s-microservices-platform/internal/metrics"
	"github.com/jconover/k8s-microservices-platform/internal/queue"
	"github.com/jconover/k8s-microservices-platform/internal/repo"
)

// RecentLimit caps how many ledger entries a read-range returns.
const RecentLimit = 100

type NotificationService struct {
	history repo.HistoryRepository
	broker  queue.Broker
	logger  *zap.SugaredLogger
}

func NewNotificationService(
	history repo.HistoryRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *NotificationService {
	return &NotificationService{
		history: history,
		broker:  broker,
		logger:  logger,
	}
}

// Process handles one delivered message: parse, count by type, append to the
// recent-history ledger. Any error propagates to the consumer, which requeues
// the message; duplicates from redelivery are tolerated.
func (s *NotificationService) Process(ctx context.Context, message []byte) error {
	var envelope domain.Notification
	if err := json.Unmarshal(message, &envelope); err != nil {
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	notificationType := envelope.Type
	if notificationType == "" {
		notificationType = domain.NotificationTypeDefault
	}

	metrics.NotificationsSent.WithLabelValues(notificationType).Inc()

	if err := s.history.Append(ctx, message); err != nil {
		return err
	}

	s.logger.Infow("notification processed", "type", notificationType, "id", envelope.ID)

	return nil
}

// Publish enqueues an arbitrary notification object, assigning a message id
// when the producer did not set one.
func (s *NotificationService) Publish(ctx context.Context, notification map[string]interface{}) (string, error) {
	id, _ := notification["id"].(string)
	if id == "" {
		id = uuid.New().String()
		notification["id"] = id
	}

	message, err := json.Marshal(notification)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueNotifications, message); err != nil {
		return "", err
	}

	s.logger.Infow("notification queued", "id", id)

	return id, nil
}

func (s *NotificationService) Recent(ctx context.Context) ([]json.RawMessage, error) {
	return s.history.Recent(ctx, RecentLimit)
}
