package controllers

import (
	"context"
	"net/http"
)

// Pinger is anything that can report whether the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves the liveness endpoint
type HealthController struct {
	store Pinger
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// Show handles GET /healthz
func (hc *HealthController) Show(w http.ResponseWriter, r *http.Request) {
	if err := hc.store.Ping(r.Context()); err != nil {
		sendJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
