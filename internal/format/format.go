// Package format renders normalized weather payloads into fixed,
// locale-specific reply templates. Rendering is pure and total: a
// malformed payload yields the locale's fallback string, never an error.
package format

import (
	"fmt"
	"strings"

	"github.com/XxAngels218/weatherbot-backend/internal/weather"
)

// Locale is a static template set plus every other user-facing string
// the turn pipeline emits. Template content is a lookup, not logic.
type Locale struct {
	code string

	currentTemplate  string
	forecastTemplate string
	unavailable      string

	clarification string
	currentError  string
	forecastError string
	apology       string
}

var english = &Locale{
	code: "en",

	currentTemplate: "🌤️ Current Weather:\n" +
		"Temperature: %.1f°C\n" +
		"Feels like: %.1f°C\n" +
		"Conditions: %s\n" +
		"Humidity: %d%%",
	forecastTemplate: "📅 Forecast for %s:\n" +
		"Temperature: %.1f°C\n" +
		"Conditions: %s",
	unavailable: "Could not retrieve weather information.",

	clarification: "I couldn't work out which city you mean. Which city would you like the weather for?",
	currentError:  "Error getting current weather: %s",
	forecastError: "Error getting the forecast: %s",
	apology:       "Sorry, there was an error processing your message. Please try again.",
}

var spanish = &Locale{
	code: "es",

	currentTemplate: "🌤️ Clima actual:\n" +
		"Temperatura: %.1f°C\n" +
		"Sensación térmica: %.1f°C\n" +
		"Condiciones: %s\n" +
		"Humedad: %d%%",
	forecastTemplate: "📅 Pronóstico para %s:\n" +
		"Temperatura: %.1f°C\n" +
		"Condiciones: %s",
	unavailable: "No se pudo obtener la información del clima.",

	clarification: "No pude identificar la ciudad. ¿De qué ciudad quieres saber el clima?",
	currentError:  "Error al obtener el clima actual: %s",
	forecastError: "Error al obtener el pronóstico: %s",
	apology:       "Lo siento, hubo un error procesando tu mensaje. Por favor, intenta de nuevo.",
}

// ForLocale returns the template set for a locale code. Unknown codes
// fall back to English.
func ForLocale(code string) *Locale {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "es":
		return spanish
	default:
		return english
	}
}

// Code returns the locale code the set was selected for.
func (l *Locale) Code() string {
	return l.code
}

// Render renders either payload shape. A nil or unknown payload yields
// the fallback string.
func (l *Locale) Render(payload interface{}) string {
	switch p := payload.(type) {
	case *weather.Current:
		return l.RenderCurrent(p)
	case *weather.ForecastEntry:
		return l.RenderForecast(p)
	default:
		return l.unavailable
	}
}

// RenderCurrent renders a current-conditions payload.
func (l *Locale) RenderCurrent(p *weather.Current) string {
	if p == nil {
		return l.unavailable
	}
	return fmt.Sprintf(l.currentTemplate, p.TemperatureC, p.FeelsLikeC, p.Conditions, p.HumidityPct)
}

// RenderForecast renders the nearest-slot forecast payload.
func (l *Locale) RenderForecast(p *weather.ForecastEntry) string {
	if p == nil || p.Timestamp == "" {
		return l.unavailable
	}
	return fmt.Sprintf(l.forecastTemplate, p.Timestamp, p.TemperatureC, p.Conditions)
}

// Clarification is the reply used when no city could be resolved from
// the pending message.
func (l *Locale) Clarification() string {
	return l.clarification
}

// CurrentError renders a fetch failure for current conditions with its
// human-readable cause embedded.
func (l *Locale) CurrentError(cause string) string {
	return fmt.Sprintf(l.currentError, cause)
}

// ForecastError renders a fetch failure for a forecast with its
// human-readable cause embedded.
func (l *Locale) ForecastError(cause string) string {
	return fmt.Sprintf(l.forecastError, cause)
}

// Apology is the fixed catch-all failure reply.
func (l *Locale) Apology() string {
	return l.apology
}
