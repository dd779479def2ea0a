package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jconover/k8s-microservices-platform/internal/httpjson"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)

	_ = httpjson.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err)

	_ = httpjson.WriteError(w, http.StatusBadRequest, "Invalid request payload")
}

func (app *application) validationFailedResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("validation failed", "method", r.Method, "path", r.URL.Path, "error", err)

	_ = httpjson.WriteError(w, http.StatusBadRequest, "Name and price are required")
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	_ = httpjson.WriteError(w, http.StatusNotFound, "Product not found")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))

	_ = httpjson.WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded")
}
