package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XxAngels218/weatherbot-backend/internal/format"
	"github.com/XxAngels218/weatherbot-backend/internal/orchestrator"
	"github.com/XxAngels218/weatherbot-backend/internal/resolver/rules"
	"github.com/XxAngels218/weatherbot-backend/internal/twilio"
	"github.com/XxAngels218/weatherbot-backend/internal/weather"
	"github.com/gorilla/mux"
)

// stubSource returns fixed payloads for any city.
type stubSource struct {
	current  *weather.Current
	forecast *weather.ForecastEntry
	err      error
}

func (s *stubSource) FetchCurrent(ctx context.Context, city string) (*weather.Current, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.current, nil
}

func (s *stubSource) FetchForecast(ctx context.Context, city string) (*weather.ForecastEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.forecast, nil
}

func newTestRouter(source weather.DataSource) *mux.Router {
	orch := orchestrator.New(rules.New(), source, format.ForLocale("en"))
	handler := NewHandler(orch, twilio.NewClient("", "", ""))

	router := mux.NewRouter()
	handler.Register(router)
	return router
}

func postChat(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChat_EndToEnd(t *testing.T) {
	router := newTestRouter(&stubSource{current: &weather.Current{
		City:         "Madrid",
		TemperatureC: 20.5,
		FeelsLikeC:   19.0,
		Conditions:   "clear sky",
		HumidityPct:  55,
	}})

	rec := postChat(t, router, `{"messages":[{"role":"user","content":"What is the weather in Madrid?"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !strings.Contains(resp.Response, "20.5°C") {
		t.Errorf("response missing stubbed temperature: %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "clear sky") {
		t.Errorf("response missing stubbed conditions: %q", resp.Response)
	}
}

func TestChat_FetchFailureStaysHTTP200(t *testing.T) {
	router := newTestRouter(&stubSource{err: &weather.NotFoundError{City: "Madrid"}})

	rec := postChat(t, router, `{"messages":[{"role":"user","content":"What is the weather in Madrid?"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (failures travel in-band)", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Madrid") {
		t.Errorf("in-band error missing city: %q", rec.Body.String())
	}
}

func TestChat_NoCityYieldsClarification(t *testing.T) {
	router := newTestRouter(&stubSource{})

	rec := postChat(t, router, `{"messages":[{"role":"user","content":"how are you?"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Response != format.ForLocale("en").Clarification() {
		t.Errorf("response = %q, want the clarification string", resp.Response)
	}
}

func TestChat_MalformedPayload(t *testing.T) {
	router := newTestRouter(&stubSource{})

	tests := []struct {
		name string
		body string
	}{
		{"broken json", `{"messages":`},
		{"empty message list", `{"messages":[]}`},
		{"invalid role", `{"messages":[{"role":"system","content":"hi"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postChat(t, router, tt.body)

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}

			var resp map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if resp["detail"] == "" {
				t.Error("error body missing detail field")
			}
		})
	}
}

func TestRoot_Greets(t *testing.T) {
	router := newTestRouter(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Welcome to WeatherBot API") {
		t.Errorf("greeting missing: %q", rec.Body.String())
	}
}
