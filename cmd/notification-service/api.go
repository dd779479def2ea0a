package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/cache"
	"github.com/jconover/k8s-microservices-platform/internal/metrics"
	"github.com/jconover/k8s-microservices-platform/internal/queue"
	"github.com/jconover/k8s-microservices-platform/internal/service"
	"github.com/jconover/k8s-microservices-platform/internal/worker"
)

type application struct {
	config              config
	logger              *zap.SugaredLogger
	rdb                 *redis.Client
	broker              queue.Broker
	notificationService *service.NotificationService
	notificationWorker  *worker.NotificationWorker
}

type config struct {
	addr     string
	env      string
	redis    cache.Config
	rabbitMQ queue.Config
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware("notification-service"))

	r.Get("/health", app.healthCheckHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Exposer())

	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/recent", app.recentNotificationsHandler)
		r.Post("/", app.publishNotificationHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// consumer loop lives for the whole process, next to the HTTP server
	if app.notificationWorker != nil {
		if err := app.notificationWorker.Start(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.notificationWorker != nil {
			app.notificationWorker.Stop()
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		if app.rdb != nil {
			if err := app.rdb.Close(); err != nil {
				app.logger.Errorw("error closing redis", "error", err)
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
