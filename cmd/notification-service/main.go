package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/cache"
	"github.com/jconover/k8s-microservices-platform/internal/env"
	"github.com/jconover/k8s-microservices-platform/internal/history"
	"github.com/jconover/k8s-microservices-platform/internal/queue"
	"github.com/jconover/k8s-microservices-platform/internal/service"
	"github.com/jconover/k8s-microservices-platform/internal/worker"
)

func main() {
	_ = godotenv.Load()

	rabbitHost := env.GetString("RABBITMQ_HOST", "rabbitmq.database")
	rabbitUser := env.GetString("RABBITMQ_USER", "admin")
	rabbitPass := env.GetString("RABBITMQ_PASS", "admin123")

	cfg := config{
		addr: env.GetString("ADDR", ":5001"),
		env:  env.GetString("ENV", "development"),
		redis: cache.Config{
			Host: env.GetString("REDIS_HOST", "redis.database"),
			Port: env.GetInt("REDIS_PORT", 6379),
		},
		rabbitMQ: queue.Config{
			URL: fmt.Sprintf("amqp://%s:%s@%s:5672/", rabbitUser, rabbitPass, rabbitHost),
			// exactly one unacknowledged message in flight: backpressure by
			// design, throughput scales by adding consumer instances
			PrefetchCount: env.GetInt("RABBITMQ_PREFETCH_COUNT", 1),
		},
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	// history ledger
	rdb := cache.NewClient(cfg.redis)
	historyRepo := history.NewRedisRepository(rdb)

	// rabbitmq broker
	broker, err := queue.NewRabbitMQBroker(cfg.rabbitMQ)
	if err != nil {
		logger.Fatalw("failed to connect to RabbitMQ", "error", err)
	}

	logger.Info("connected to RabbitMQ")

	notificationService := service.NewNotificationService(historyRepo, broker, logger)
	notificationWorker := worker.NewNotificationWorker(notificationService, broker, logger)

	app := &application{
		config:              cfg,
		logger:              logger,
		rdb:                 rdb,
		broker:              broker,
		notificationService: notificationService,
		notificationWorker:  notificationWorker,
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
