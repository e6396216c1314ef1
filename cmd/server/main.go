package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XxAngels218/weatherbot-backend/internal/api"
	"github.com/XxAngels218/weatherbot-backend/internal/config"
	"github.com/XxAngels218/weatherbot-backend/internal/format"
	"github.com/XxAngels218/weatherbot-backend/internal/health"
	"github.com/XxAngels218/weatherbot-backend/internal/httpx"
	"github.com/XxAngels218/weatherbot-backend/internal/logging"
	"github.com/XxAngels218/weatherbot-backend/internal/metrics"
	"github.com/XxAngels218/weatherbot-backend/internal/orchestrator"
	"github.com/XxAngels218/weatherbot-backend/internal/otel"
	"github.com/XxAngels218/weatherbot-backend/internal/resolver"
	"github.com/XxAngels218/weatherbot-backend/internal/resolver/llm"
	"github.com/XxAngels218/weatherbot-backend/internal/resolver/rules"
	"github.com/XxAngels218/weatherbot-backend/internal/retry"
	"github.com/XxAngels218/weatherbot-backend/internal/twilio"
	"github.com/XxAngels218/weatherbot-backend/internal/weather"
	"github.com/gorilla/mux"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx := context.Background()

	// Load configuration from .env file
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	secureLog := logging.NewSecureLogger(slog.Default())
	secureLog.Info("Loaded configuration",
		"listen_addr", cfg.ListenAddr,
		"reply_locale", cfg.ReplyLocale,
		"openai_model", cfg.OpenAIModel,
		"openai_api_key", cfg.OpenAIApiKey,
		"openweather_api_key", cfg.OpenWeatherApiKey,
		"twilio_auth_token", cfg.TwilioAuthToken,
	)

	// Initialize OpenTelemetry
	shutdown, err := otel.InitOpenTelemetry(ctx, "weatherbot-api")
	if err != nil {
		slog.Error("Failed to initialize OpenTelemetry", "error", err)
		os.Exit(1)
	}
	defer shutdown(ctx)

	appMetrics, err := metrics.New(otel.GetMeter())
	if err != nil {
		slog.Error("Failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	weatherClient := weather.NewClient(cfg.OpenWeatherApiKey,
		weather.WithLang(cfg.ReplyLocale))

	// Resolver backend selection: the model-driven resolver when an
	// OpenAI key is configured, the rule-driven one otherwise. The
	// pipeline downstream is identical either way.
	var turnResolver resolver.Resolver
	if cfg.OpenAIApiKey != "" {
		cli := openai.NewClient(option.WithAPIKey(cfg.OpenAIApiKey))
		turnResolver = llm.New(cli, cfg.OpenAIModel)
		slog.Info("Using model-driven resolver", "model", cfg.OpenAIModel)
	} else {
		turnResolver = rules.New()
		slog.Info("Using rule-driven resolver")
	}

	locale := format.ForLocale(cfg.ReplyLocale)
	retryCfg := retry.Config{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.RetryMaxDelayMs) * time.Millisecond,
		Retryable:   weather.Retryable,
	}

	// Built once and shared: the orchestrator holds no per-request state.
	orch := orchestrator.New(turnResolver, weatherClient, locale,
		orchestrator.WithRetryConfig(retryCfg),
		orchestrator.WithMetrics(appMetrics),
	)

	messaging := twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)

	// Configure handler
	handler := mux.NewRouter()
	handler.Use(
		httpx.OTelMiddleware(),
		httpx.RequestID(),
		httpx.Logger(),
		httpx.Recovery(),
	)

	// Health checks
	healthChecker := health.NewChecker(map[string]health.Check{
		"weather_credential": func(ctx context.Context) error {
			if cfg.OpenWeatherApiKey == "" {
				return errors.New("OPENWEATHER_API_KEY is not set")
			}
			return nil
		},
		"messaging_credential": func(ctx context.Context) error {
			if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
				return errors.New("Twilio credentials are not set")
			}
			return nil
		},
	})
	handler.HandleFunc("/health", healthChecker.HealthHandler)
	handler.HandleFunc("/ready", healthChecker.ReadyHandler)

	// Metrics endpoint
	handler.Handle("/metrics", promhttp.Handler())

	api.NewHandler(orch, messaging).Register(handler)

	// Start the server with graceful shutdown
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting the server...", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}
