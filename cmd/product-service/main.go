package main

import (
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/cache"
	"github.com/jconover/k8s-microservices-platform/internal/env"
	"github.com/jconover/k8s-microservices-platform/internal/ratelimiter"
	"github.com/jconover/k8s-microservices-platform/internal/service"
	"github.com/jconover/k8s-microservices-platform/internal/store/postgres"
)

const version = "1.0.0"

//	@title			Product Service
//	@description	Product catalog CRUD API with cache-aside reads
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
func main() {
	_ = godotenv.Load()

	cfg := config{
		addr:   env.GetString("ADDR", ":5000"),
		apiURL: env.GetString("EXTERNAL_URL", "localhost:5000"),
		env:    env.GetString("ENV", "development"),
		rateLimiter: ratelimiter.Config{
			Enabled: env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		db: postgres.Config{
			Host:     env.GetString("DB_HOST", "postgresql.database"),
			Port:     env.GetInt("DB_PORT", 5432),
			Database: env.GetString("DB_NAME", "microservices"),
			User:     env.GetString("DB_USER", "admin"),
			Password: env.GetString("DB_PASSWORD", "SuperSecurePassword123!"),
			Timeout:  time.Second * 10,
		},
		redis: cache.Config{
			Host: env.GetString("REDIS_HOST", "redis.database"),
			Port: env.GetInt("REDIS_PORT", 6379),
		},
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	// storage
	storage, err := postgres.New(cfg.db)
	if err != nil {
		logger.Fatalw("failed to connect to postgres", "error", err)
	}

	logger.Info("connected to postgres")

	if err := storage.Migrate(); err != nil {
		logger.Warnw("failed to migrate database", "error", err)
	} else {
		logger.Info("database initialized successfully")
	}

	// cache
	rdb := cache.NewClient(cfg.redis)
	productCache := cache.NewRedisProductCache(rdb, logger)

	productRepo := postgres.NewProductRepository(storage)
	productService := service.NewProductService(productRepo, productCache, logger)

	app := &application{
		config:         cfg,
		logger:         logger,
		db:             storage,
		cache:          redisPinger{rdb: rdb},
		storage:        storage,
		rdb:            rdb,
		productService: productService,
		limits: limiters{
			daily:  ratelimiter.NewRedisFixedWindow(rdb, "products:day", 200, 24*time.Hour),
			hourly: ratelimiter.NewRedisFixedWindow(rdb, "products:hour", 50, time.Hour),
			list:   ratelimiter.NewRedisFixedWindow(rdb, "products:list", 100, time.Minute),
			create: ratelimiter.NewRedisFixedWindow(rdb, "products:create", 10, time.Minute),
		},
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
