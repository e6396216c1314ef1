package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Current is the normalized current-conditions payload.
type Current struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperature_c"`
	FeelsLikeC   float64 `json:"feels_like_c"`
	Conditions   string  `json:"conditions"`
	HumidityPct  int     `json:"humidity_pct"`
}

// ForecastEntry is the first chronological slot of the provider's
// forecast series. The truncation is deliberate: downstream "forecast"
// always means the nearest upcoming slot, not a multi-day summary.
type ForecastEntry struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperature_c"`
	Conditions   string  `json:"conditions"`
	Timestamp    string  `json:"timestamp"`
}

// DataSource is the collaborator boundary the orchestrator fetches
// through. Both operations are single-attempt; retry policy lives with
// the caller.
type DataSource interface {
	FetchCurrent(ctx context.Context, city string) (*Current, error)
	FetchForecast(ctx context.Context, city string) (*ForecastEntry, error)
}

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches weather data from OpenWeatherMap.
type Client struct {
	client  *http.Client
	apiKey  string
	baseURL string
	lang    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLang sets the provider response language for condition texts.
func WithLang(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

// NewClient creates an OpenWeatherMap client. An empty apiKey is
// allowed; requests will surface ErrUnauthorized instead of crashing.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		lang:    "en",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ DataSource = (*Client)(nil)

// FetchCurrent retrieves current conditions for a city.
func (c *Client) FetchCurrent(ctx context.Context, city string) (*Current, error) {
	var apiResponse struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := c.get(ctx, "/weather", city, &apiResponse); err != nil {
		return nil, err
	}

	current := &Current{
		City:         city,
		TemperatureC: apiResponse.Main.Temp,
		FeelsLikeC:   apiResponse.Main.FeelsLike,
		HumidityPct:  apiResponse.Main.Humidity,
	}
	if apiResponse.Name != "" {
		current.City = apiResponse.Name
	}
	if len(apiResponse.Weather) > 0 {
		current.Conditions = apiResponse.Weather[0].Description
	}

	slog.InfoContext(ctx, "Retrieved current weather",
		"city", city, "temperature_c", current.TemperatureC)
	return current, nil
}

// FetchForecast retrieves the nearest upcoming forecast slot for a city.
func (c *Client) FetchForecast(ctx context.Context, city string) (*ForecastEntry, error) {
	var apiResponse struct {
		City struct {
			Name string `json:"name"`
		} `json:"city"`
		List []struct {
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
			DtTxt string `json:"dt_txt"`
		} `json:"list"`
	}

	if err := c.get(ctx, "/forecast", city, &apiResponse); err != nil {
		return nil, err
	}

	if len(apiResponse.List) == 0 {
		return nil, &TransportError{Detail: "forecast response has no entries"}
	}

	first := apiResponse.List[0]
	entry := &ForecastEntry{
		City:         city,
		TemperatureC: first.Main.Temp,
		Timestamp:    first.DtTxt,
	}
	if apiResponse.City.Name != "" {
		entry.City = apiResponse.City.Name
	}
	if len(first.Weather) > 0 {
		entry.Conditions = first.Weather[0].Description
	}

	slog.InfoContext(ctx, "Retrieved weather forecast",
		"city", city, "timestamp", entry.Timestamp)
	return entry, nil
}

// get performs one provider request and decodes the body into dest.
// Status mapping: 401 -> ErrUnauthorized, 404 -> NotFoundError, any
// other non-2xx -> ProviderError, network/decoding -> TransportError.
func (c *Client) get(ctx context.Context, path, city string, dest interface{}) error {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("lang", c.lang)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &TransportError{Detail: "failed to create request", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Detail: "failed to reach weather provider", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized:
		slog.ErrorContext(ctx, "Invalid API key for OpenWeather")
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		slog.WarnContext(ctx, "City not found", "city", city)
		return &NotFoundError{City: city}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		slog.ErrorContext(ctx, "OpenWeather API error",
			"status", resp.StatusCode, "body", string(body))
		return &ProviderError{Status: resp.StatusCode, Detail: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &TransportError{Detail: "failed to decode provider response", Err: err}
	}
	return nil
}
