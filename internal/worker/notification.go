package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/queue"
	"github.com/jconover/k8s-microservices-platform/internal/service"
)

// NotificationWorker is the long-lived consumer loop. It runs for the process
// lifetime on its own goroutine, independent of the request-serving path.
type NotificationWorker struct {
	notificationService *service.NotificationService
	broker              queue.Broker
	logger              *zap.SugaredLogger
	ctx                 context.Context
	cancel              context.CancelFunc
}

func NewNotificationWorker(
	notificationService *service.NotificationService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *NotificationWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationWorker{
		notificationService: notificationService,
		broker:              broker,
		logger:              logger,
		ctx:                 ctx,
		cancel:              cancel,
	}
}

func (w *NotificationWorker) Start() error {
	w.logger.Info("starting notification worker")

	return w.broker.Subscribe(w.ctx, queue.QueueNotifications, w.handleMessage)
}

func (w *NotificationWorker) Stop() {
	w.logger.Info("stopping notification worker")
	w.cancel()
}

// handleMessage returns the processing error to the broker, which nacks with
// requeue; the loop itself never dies on a bad message.
func (w *NotificationWorker) handleMessage(ctx context.Context, message []byte) error {
	if err := w.notificationService.Process(ctx, message); err != nil {
		w.logger.Errorw("failed to process notification", "error", err)
		return err
	}

	return nil
}
