package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Response represents the health check response
type Response struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Checker runs registered dependency checks for the health endpoints.
type Checker struct {
	checks map[string]Check
}

// NewChecker creates a health checker over named dependency probes.
func NewChecker(checks map[string]Check) *Checker {
	return &Checker{checks: checks}
}

func (h *Checker) run(ctx context.Context) Response {
	response := Response{
		Status:    "healthy",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			response.Status = "unhealthy"
			response.Checks[name] = "failed: " + err.Error()
		} else {
			response.Checks[name] = "ok"
		}
	}

	return response
}

// HealthHandler handles the /health endpoint
func (h *Checker) HealthHandler(w http.ResponseWriter, r *http.Request) {
	response := h.run(r.Context())

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// ReadyHandler handles the /ready endpoint
func (h *Checker) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	response := h.run(r.Context())
	if response.Status == "unhealthy" {
		response.Status = "not ready"
	} else {
		response.Status = "ready"
	}

	statusCode := http.StatusOK
	if response.Status == "not ready" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
