// Package httpapi assembles the route tree: the public /v1 calculation
// API, the /admin operational API, and the unauthenticated health and
// metrics endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tempus/pkg/platform/httputil"
)

// readyCheckTimeout bounds each dependency probe so a hung backend
// cannot stall the readiness endpoint.
const readyCheckTimeout = 2 * time.Second

// Registrar mounts a group of routes onto the root router. The calc and
// admin handlers implement it.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one backing dependency for /readyz.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ReadyResponse is the /readyz body.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// NewRouter builds the full route tree. checks run on every /readyz
// call; any failure flips readiness to 503 so the load balancer drains
// the instance while /healthz keeps reporting the process alive.
func NewRouter(logger *slog.Logger, registrars []Registrar, checks ...HealthCheck) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady(logger, checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, reg := range registrars {
		reg.Register(r)
	}
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(logger *slog.Logger, checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, c := range checks {
			checkCtx, cancel := context.WithTimeout(ctx, readyCheckTimeout)
			err := c.Check(checkCtx)
			cancel()
			if err != nil {
				status = http.StatusServiceUnavailable
				results[c.Name] = "unavailable"
				logger.WarnContext(ctx, "readiness check failed",
					"check", c.Name,
					"error", err.Error(),
				)
				continue
			}
			results[c.Name] = "ok"
		}

		body := ReadyResponse{Status: "ok", Checks: results}
		if status != http.StatusOK {
			body.Status = "unavailable"
		}
		httputil.WriteJSON(w, status, body)
	}
}
