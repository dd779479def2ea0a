package main

import (
	"net/http"

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
