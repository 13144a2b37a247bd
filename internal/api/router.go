package api

import (
	"net/http"
	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// runs and db may be nil; without runs, history is not served.
func NewRouter(optimizer *services.RouteOptimizer, runs ports.RouteRunRepository, db handlers.Pinger) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{DB: db}
	optimizeHandler := &handlers.OptimizeHandler{Optimizer: optimizer, Runs: runs}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/routes/optimize", optimizeHandler.Optimize)
	if runs != nil {
		historyHandler := &handlers.HistoryHandler{Runs: runs}
		mux.HandleFunc("/routes/history", historyHandler.List)
	}
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
