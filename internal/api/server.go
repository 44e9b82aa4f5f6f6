// Package api provides the HTTP server for Flash Mentor.
// It exposes the help-request contract to the presentation layer and a
// small admin surface for the expert directory.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flashmentor-network/flashmentor/internal/app/coordinator"
	"github.com/flashmentor-network/flashmentor/internal/app/directory"
	"github.com/flashmentor-network/flashmentor/internal/app/ledger"
)

// Version is the API version reported by /api/version.
const Version = "0.1.0"

// Server is the Flash Mentor HTTP API server.
type Server struct {
	coord          *coordinator.Coordinator
	ledger         *ledger.Ledger
	dir            *directory.Directory
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(coord *coordinator.Coordinator, l *ledger.Ledger, dir *directory.Directory) *Server {
	return &Server{coord: coord, ledger: l, dir: dir}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	// Health check for container orchestrators
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "Flash Mentor API Ready (TimeLedger Active)",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/request-help", s.handleRequestHelp)

		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions/{id}/complete", s.handleCompleteSession)

		r.Get("/accounts/{id}", s.handleAccountBalance)
		r.Get("/accounts/{id}/history", s.handleAccountHistory)

		r.Get("/experts", s.handleListExperts)
		r.Post("/experts", s.handleUpsertExpert)
		r.Post("/experts/{id}/availability", s.handleSetAvailability)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// corsMiddleware allows the browser client to call the API directly.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}
