package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_AllChecksPass(t *testing.T) {
	checker := NewChecker(map[string]Check{
		"weather_credential":   func(ctx context.Context) error { return nil },
		"messaging_credential": func(ctx context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	checker.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Checks["weather_credential"] != "ok" {
		t.Errorf("weather check = %q, want ok", resp.Checks["weather_credential"])
	}
}

func TestHealthHandler_FailingCheck(t *testing.T) {
	checker := NewChecker(map[string]Check{
		"messaging_credential": func(ctx context.Context) error {
			return errors.New("credential not configured")
		},
	})

	rec := httptest.NewRecorder()
	checker.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", resp.Status)
	}
	if resp.Checks["messaging_credential"] != "failed: credential not configured" {
		t.Errorf("check detail = %q", resp.Checks["messaging_credential"])
	}
}

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name       string
		checkErr   error
		wantStatus string
		wantCode   int
	}{
		{"ready when checks pass", nil, "ready", http.StatusOK},
		{"not ready when a check fails", errors.New("down"), "not ready", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(map[string]Check{
				"dep": func(ctx context.Context) error { return tt.checkErr },
			})

			rec := httptest.NewRecorder()
			checker.ReadyHandler(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}

			var resp Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantStatus)
			}
		})
	}
}
