// Package rules implements the deterministic resolver backend: it
// reasons directly from the message text, with no model in the loop.
package rules

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/XxAngels218/weatherbot-backend/internal/chat"
	"github.com/XxAngels218/weatherbot-backend/internal/resolver"
)

// forecastMarkers is the future-time phrasing that flips intent from
// current conditions to forecast. English and Spanish, matched on the
// lowercased message.
var forecastMarkers = []string{
	"forecast",
	"tomorrow",
	"will it",
	"going to be",
	"later today",
	"pronóstico",
	"pronostico",
	"mañana",
	"manana",
	"va a",
}

// cityMarkers are prepositions that typically introduce a location.
var cityMarkers = map[string]bool{
	"in":   true,
	"at":   true,
	"for":  true,
	"en":   true,
	"de":   true,
	"para": true,
}

// Resolver extracts intent and city from the pending message without
// calling a model. History is consulted only to resolve pronoun
// references and elliptical follow-ups.
type Resolver struct{}

// New creates a rule-driven resolver.
func New() *Resolver {
	return &Resolver{}
}

var _ resolver.Resolver = (*Resolver)(nil)

// Resolve inspects the pending turn. Forecast-indicating language
// selects forecast intent, otherwise current weather. When the pending
// message names several cities, the last mention wins.
func (r *Resolver) Resolve(ctx context.Context, conv chat.Conversation) resolver.Action {
	if conv.IsEmpty() {
		return resolver.None("empty message")
	}

	pending, _ := conv.Pending()
	text := pending.Content

	city := extractCity(text)
	if city == "" {
		// Pronoun references ("what about there?") and bare follow-ups
		// ("and tomorrow?") inherit the most recently mentioned city.
		city = cityFromHistory(conv.History())
	}

	if city == "" {
		slog.DebugContext(ctx, "No city resolved from message")
		return resolver.None("city not found")
	}

	action := resolver.CurrentWeather(city)
	if wantsForecast(text) {
		action = resolver.Forecast(city)
	}

	slog.InfoContext(ctx, "Resolved action from message text",
		"action", string(action.Kind), "city", action.City)
	return action
}

func wantsForecast(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range forecastMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// nameParticles are lowercase words that can sit inside a proper name
// ("Rio de Janeiro", "Stratford upon Avon") without ending it.
var nameParticles = map[string]bool{
	"de":   true,
	"del":  true,
	"la":   true,
	"las":  true,
	"los":  true,
	"upon": true,
}

// extractCity returns the last city-like phrase in the text: a run of
// capitalized words following a location preposition. Tokens consumed
// into a name are skipped, so a particle inside "Rio de Janeiro" does
// not re-anchor extraction.
func extractCity(text string) string {
	tokens := strings.Fields(text)
	city := ""
	for i := 0; i < len(tokens); i++ {
		if !cityMarkers[strings.ToLower(trimToken(tokens[i]))] || i+1 >= len(tokens) {
			continue
		}
		name, consumed := properNounAfter(tokens[i+1:])
		if name != "" {
			city = name
			i += consumed
		}
	}
	return city
}

// properNounAfter collects the leading run of capitalized tokens, so
// multi-word names like "New York" come back whole. Known lowercase
// particles stay in the run when a capitalized word follows them. It
// also reports how many tokens the name consumed.
func properNounAfter(tokens []string) (string, int) {
	var parts []string
	consumed := 0
	for i := 0; i < len(tokens); i++ {
		word := trimToken(tokens[i])
		if word == "" {
			break
		}
		if startsUpper(word) {
			parts = append(parts, word)
			consumed = i + 1
			continue
		}
		if len(parts) > 0 && nameParticles[strings.ToLower(word)] &&
			i+1 < len(tokens) && startsUpper(trimToken(tokens[i+1])) {
			parts = append(parts, word)
			consumed = i + 1
			continue
		}
		break
	}
	if consumed == 0 {
		return "", 0
	}
	return strings.Join(parts, " "), consumed
}

// cityFromHistory scans history newest-first for a city mention.
func cityFromHistory(history []chat.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if city := extractCity(history[i].Content); city != "" {
			return city
		}
	}
	return ""
}

func trimToken(tok string) string {
	return strings.TrimFunc(tok, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}
