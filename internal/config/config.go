package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration parameters
type Config struct {
	ListenAddr string

	OpenAIApiKey string
	OpenAIModel  string

	OpenWeatherApiKey string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// ReplyLocale selects the response template set: "en" or "es".
	ReplyLocale string

	RetryMaxAttempts int
	RetryBaseDelayMs int
	RetryMaxDelayMs  int
}

// Load loads configuration from environment variables and .env file
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	config := &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		OpenAIApiKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenWeatherApiKey: getEnv("OPENWEATHER_API_KEY", ""),
		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		ReplyLocale:       getEnv("REPLY_LOCALE", "en"),
		RetryMaxAttempts:  getEnvInt("RETRY_MAX_ATTEMPTS", 3),
		RetryBaseDelayMs:  getEnvInt("RETRY_BASE_DELAY_MS", 500),
		RetryMaxDelayMs:   getEnvInt("RETRY_MAX_DELAY_MS", 5000),
	}

	if config.OpenWeatherApiKey == "" {
		log.Printf("Warning: OPENWEATHER_API_KEY is required for production use")
		// Don't fatal in tests to allow them to run
	}
	if config.OpenAIApiKey == "" {
		log.Printf("Warning: OPENAI_API_KEY is not set, falling back to the rule-based resolver")
	}

	return config
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// getEnvInt gets environment variable as integer with fallback
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
		log.Printf("Warning: invalid integer value for %s: %s, using default: %d", key, value, fallback)
	}
	return fallback
}
