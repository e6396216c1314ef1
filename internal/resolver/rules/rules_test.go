package rules

import (
	"context"
	"testing"

	"github.com/XxAngels218/weatherbot-backend/internal/chat"
	"github.com/XxAngels218/weatherbot-backend/internal/resolver"
)

func userTurn(content string) chat.Conversation {
	return chat.Conversation{{Role: chat.RoleUser, Content: content}}
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	res := New()

	tests := []struct {
		name string
		conv chat.Conversation
		want resolver.Action
	}{
		{
			name: "current weather question",
			conv: userTurn("What is the weather in Paris?"),
			want: resolver.CurrentWeather("Paris"),
		},
		{
			name: "forecast marker selects forecast intent",
			conv: userTurn("What is the forecast for Madrid?"),
			want: resolver.Forecast("Madrid"),
		},
		{
			name: "future phrasing selects forecast intent",
			conv: userTurn("Will it rain tomorrow in Berlin?"),
			want: resolver.Forecast("Berlin"),
		},
		{
			name: "spanish current weather question",
			conv: userTurn("¿Qué clima hace en Barcelona?"),
			want: resolver.CurrentWeather("Barcelona"),
		},
		{
			name: "multi-word city names come back whole",
			conv: userTurn("How is the weather in New York?"),
			want: resolver.CurrentWeather("New York"),
		},
		{
			name: "last mentioned city wins",
			conv: userTurn("Not in London, what about in Rome?"),
			want: resolver.CurrentWeather("Rome"),
		},
		{
			name: "lowercase particle stays inside the name",
			conv: userTurn("What is the weather in Rio de Janeiro?"),
			want: resolver.CurrentWeather("Rio de Janeiro"),
		},
		{
			name: "particle inside a name does not re-anchor extraction",
			conv: userTurn("Forecast for Stratford upon Avon please"),
			want: resolver.Forecast("Stratford upon Avon"),
		},
		{
			name: "spanish particle name",
			conv: userTurn("¿Qué clima hace en La Coruña?"),
			want: resolver.CurrentWeather("La Coruña"),
		},
		{
			name: "empty message yields no action",
			conv: userTurn("   "),
			want: resolver.None("empty message"),
		},
		{
			name: "no city yields no action",
			conv: userTurn("what is the weather like?"),
			want: resolver.None("city not found"),
		},
		{
			name: "pronoun reference resolves from history",
			conv: chat.Conversation{
				{Role: chat.RoleUser, Content: "What is the weather in Lisbon?"},
				{Role: chat.RoleAssistant, Content: "🌤️ Current Weather: ..."},
				{Role: chat.RoleUser, Content: "And what about tomorrow there?"},
			},
			want: resolver.Forecast("Lisbon"),
		},
		{
			name: "history is context only, not re-answered",
			conv: chat.Conversation{
				{Role: chat.RoleUser, Content: "What is the weather in Lisbon?"},
				{Role: chat.RoleAssistant, Content: "🌤️ Current Weather: ..."},
				{Role: chat.RoleUser, Content: "Thanks! And in Porto?"},
			},
			want: resolver.CurrentWeather("Porto"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := res.Resolve(ctx, tt.conv)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolver_EmptyConversation(t *testing.T) {
	got := New().Resolve(context.Background(), nil)
	if got.Kind != resolver.KindNone {
		t.Errorf("Resolve(nil) = %+v, want KindNone", got)
	}
}
