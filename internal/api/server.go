// Package api provides the HTTP observation surface for the simulation.
// GET endpoints are public and serve the latest telemetry snapshot — a deep
// copy taken at a tick boundary, so readers never see a half-updated tick.
// The single POST endpoint (bearer token) queues the pointer-drag
// position/velocity overwrite, the one external mutation the core accepts.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/talgya/fieldsim/internal/engine"
)

// Server serves the telemetry snapshot over HTTP.
type Server struct {
	Runner   *engine.Runner
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	writeLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can check in on the world).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/telemetry", s.handleTelemetry)
	mux.HandleFunc("/api/v1/registry", s.handleRegistry)
	mux.HandleFunc("/api/v1/anchors", s.handleAnchors)

	// Control endpoint (POST, requires bearer token).
	mux.HandleFunc("/api/v1/entity/position",
		RateLimitMiddleware(writeLimiter, s.adminOnly(s.handlePosition)))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminOnly gates a handler behind the bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "control endpoints disabled", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Runner.Latest()
	writeJSON(w, map[string]any{
		"tick":              snap.Tick,
		"living_invariants": snap.Metrics.LivingInvariants,
		"total_energy":      snap.Metrics.TotalEnergy,
		"budget":            snap.Metrics.Budget,
		"risk":              snap.Metrics.Risk,
		"probes":            snap.Metrics.ProbeCount,
		"basins":            snap.Metrics.BasinCount,
		"events":            snap.EventCount,
	})
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Runner.Latest())
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Runner.Latest().Registry)
}

func (s *Server) handleAnchors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Runner.Latest().Anchors)
}

// handlePosition queues an external position/velocity overwrite. The write is
// applied at the next tick boundary, in arrival order.
func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var kw engine.KinematicWrite
	if err := json.NewDecoder(r.Body).Decode(&kw); err != nil {
		http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
		return
	}
	if kw.ID == "" {
		http.Error(w, "bad request: missing id", http.StatusBadRequest)
		return
	}

	s.Runner.Push(kw)
	writeJSON(w, map[string]any{"queued": true, "id": kw.ID})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}
