package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cccd-intake/internal/intake/handler"
	"cccd-intake/internal/platform/database"
	"cccd-intake/internal/platform/metrics"
	"cccd-intake/internal/platform/middleware"
	"cccd-intake/internal/sessiontoken"
	"cccd-intake/internal/transport/http/json"
)

// NewRouter wires all endpoints with the middleware stack. Intake routes sit
// behind the session gate; session bootstrap, image serving, and operational
// endpoints stay public.
func NewRouter(h *handler.Handler, tokens *sessiontoken.Service, pool *database.Pool, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))
	r.Use(middleware.Timeout(30 * time.Second))

	h.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessiontoken.CookieName, tokens, logger))
		h.RegisterProtected(r)
	})

	r.Get("/healthz", healthHandler(pool))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthHandler(pool *database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "database": "not_configured"}
		if pool != nil {
			if err := pool.Health(r.Context()); err != nil {
				status["database"] = "unreachable"
				json.WriteJSON(w, http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "ok"
		}
		json.WriteJSON(w, http.StatusOK, status)
	}
}
