package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-redis/redis/v8"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/docs"
	"github.com/jconover/k8s-microservices-platform/internal/cache"
	"github.com/jconover/k8s-microservices-platform/internal/metrics"
	"github.com/jconover/k8s-microservices-platform/internal/ratelimiter"
	"github.com/jconover/k8s-microservices-platform/internal/service"
	"github.com/jconover/k8s-microservices-platform/internal/store/postgres"
)

type application struct {
	config         config
	logger         *zap.SugaredLogger
	db             dependencyPinger
	cache          dependencyPinger
	storage        *postgres.Storage
	rdb            *redis.Client
	productService *service.ProductService
	limits         limiters
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	db          postgres.Config
	redis       cache.Config
}

type limiters struct {
	daily  ratelimiter.Limiter
	hourly ratelimiter.Limiter
	list   ratelimiter.Limiter
	create ratelimiter.Limiter
}

type dependencyPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware("product-service"))

	r.Get("/health", app.healthCheckHandler)
	r.Get("/ready", app.readinessCheckHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Exposer())

	r.Route("/api/products", func(r chi.Router) {
		r.Use(app.rateLimit(app.limits.daily, app.limits.hourly))

		r.With(app.rateLimit(app.limits.list)).Get("/", app.listProductsHandler)
		r.With(app.rateLimit(app.limits.create)).Post("/", app.createProductHandler)

		r.Get("/{id}", app.getProductHandler)
		r.Put("/{id}", app.updateProductHandler)
		r.Delete("/{id}", app.deleteProductHandler)
	})

	docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

	return r
}

// rateLimit checks the given limiters against the client address. A limiter
// backend failure fails open: throttling is best-effort, like the cache.
func (app *application) rateLimit(limits ...ratelimiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !app.config.rateLimiter.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			key := r.RemoteAddr
			if host, _, err := net.SplitHostPort(key); err == nil {
				key = host
			}

			for _, limit := range limits {
				allowed, retryAfter, err := limit.Allow(r.Context(), key)
				if err != nil {
					app.logger.Warnw("rate limiter unavailable", "error", err)
					continue
				}
				if !allowed {
					app.rateLimitExceededResponse(w, r, retryAfter)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Product Service"
	docs.SwaggerInfo.Description = "Product catalog CRUD API with cache-aside reads"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/"

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

		if app.storage != nil {
			if err := app.storage.Close(); err != nil {
				app.logger.Errorw("error closing postgres", "error", err)
			} else {
				app.logger.Info("postgres connection closed gracefully")
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
