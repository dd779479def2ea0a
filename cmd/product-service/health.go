package main

import (
	"net/http"
	"time"

	"github.com/jconover/k8s-microservices-platform/internal/httpjson"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}

// healthCheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Fails when postgres or redis is unreachable
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := app.db.Ping(r.Context()); err != nil {
		app.logger.Errorw("health check failed", "dependency", "database", "error", err)
		dbStatus = "error"
	}

	// unlike the serving path, health treats an unreachable cache as fatal:
	// orchestration should not route traffic to an instance without its cache
	cacheStatus := "ok"
	if err := app.cache.Ping(r.Context()); err != nil {
		app.logger.Errorw("health check failed", "dependency", "cache", "error", err)
		cacheStatus = "error"
	}

	response := HealthResponse{
		Status:    "healthy",
		Service:   "product-service",
		Timestamp: time.Now().UTC(),
		Services: map[string]string{
			"database": dbStatus,
			"cache":    cacheStatus,
		},
	}

	if dbStatus != "ok" || cacheStatus != "ok" {
		response.Status = "unhealthy"
		if err := httpjson.Write(w, http.StatusServiceUnavailable, response); err != nil {
			app.logger.Errorw("failed to write response", "error", err)
		}
		return
	}

	if err := httpjson.Write(w, http.StatusOK, response); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}

// readinessCheckHandler godoc
//
//	@Summary		Readiness check
//	@Description	Ready once the database answers
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		503	{object}	map[string]string
//	@Router			/ready [get]
func (app *application) readinessCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.db.Ping(r.Context()); err != nil {
		app.logger.Errorw("readiness check failed", "error", err)
		if err := httpjson.Write(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"}); err != nil {
			app.logger.Errorw("failed to write response", "error", err)
		}
		return
	}

	if err := httpjson.Write(w, http.StatusOK, map[string]string{"status": "ready"}); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}
