// Package resolver defines the contract for turning a conversation into
// a single weather action. Backends (model-driven or rule-driven) are
// interchangeable; the rest of the pipeline must not depend on which
// one is wired in.
package resolver

import (
	"context"

	"github.com/XxAngels218/weatherbot-backend/internal/chat"
)

// Kind discriminates the action variants.
type Kind string

const (
	// KindCurrentWeather requests current conditions for Action.City.
	KindCurrentWeather Kind = "current_weather"
	// KindForecast requests the nearest forecast slot for Action.City.
	KindForecast Kind = "forecast"
	// KindNone means no action could be determined; Action.Reason says why.
	KindNone Kind = "none"
)

// Action is the resolved intent and arguments for one turn. Ephemeral,
// one per Resolve call.
type Action struct {
	Kind   Kind
	City   string
	Reason string
}

// CurrentWeather builds a current-conditions action.
func CurrentWeather(city string) Action {
	return Action{Kind: KindCurrentWeather, City: city}
}

// Forecast builds a forecast action.
func Forecast(city string) Action {
	return Action{Kind: KindForecast, City: city}
}

// None builds a no-action result with a diagnostic reason.
func None(reason string) Action {
	return Action{Kind: KindNone, Reason: reason}
}

// Resolver decides what to do for the pending turn of a conversation.
// History messages are context only; implementations must not re-answer
// old turns. Resolve never fails: any internal error or ambiguity maps
// to a KindNone action.
type Resolver interface {
	Resolve(ctx context.Context, conv chat.Conversation) Action
}
