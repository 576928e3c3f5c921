package app

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saymealien/bloodpressurebot/internal/metrics"
)

// newHTTPHandler serves liveness and Prometheus metrics.
func newHTTPHandler(m *metrics.Metrics, driver string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "store": driver})
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}
