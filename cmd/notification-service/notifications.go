package main

import (
	"net/http"

	"github.com/jconover/k8s-microservices-platform/internal/httpjson"
)

// recentNotificationsHandler returns up to 100 most recently processed
// notifications, newest first.
func (app *application) recentNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	notifications, err := app.notificationService.Recent(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := httpjson.Write(w, http.StatusOK, notifications); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}

// publishNotificationHandler enqueues an arbitrary notification object for
// the consumer loop. The message id is assigned here when absent.
func (app *application) publishNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var notification map[string]interface{}
	if err := httpjson.Read(w, r, &notification); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if len(notification) == 0 {
		app.badRequestResponse(w, r, nil)
		return
	}

	id, err := app.notificationService.Publish(r.Context(), notification)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"id":     id,
		"status": "queued",
	}

	if err := httpjson.Write(w, http.StatusAccepted, response); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}
