package main

import (
	"net/http"

	"github.com/jconover/k8s-microservices-platform/internal/httpjson"
)

// healthCheckHandler always reports healthy: the consumer loop survives
// transient backend failures, so liveness only means the process is up.
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "notification-service",
	}

	if err := httpjson.Write(w, http.StatusOK, response); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}
