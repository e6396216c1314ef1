// Package llm implements the model-driven resolver backend: an OpenAI
// chat completion constrained to two callable functions picks the
// action and supplies the city argument.
package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/XxAngels218/weatherbot-backend/internal/chat"
	"github.com/XxAngels218/weatherbot-backend/internal/resolver"
	"github.com/openai/openai-go/v2"
)

const (
	toolCurrentWeather = "get_current_weather"
	toolForecast       = "get_forecast"
)

const systemPrompt = "You are a weather assistant. Decide what weather data the " +
	"user's latest message asks for and call exactly one of the available " +
	"functions with the city it refers to. Earlier messages are context only: " +
	"use them to resolve references like \"there\", never to re-answer old " +
	"questions. If several cities appear, use the most recently mentioned one. " +
	"If no city can be determined, do not call any function."

// Resolver asks an OpenAI model, constrained to the two weather
// functions, to pick the action for the pending turn.
type Resolver struct {
	cli   openai.Client
	model openai.ChatModel
}

// New creates a model-driven resolver around an injected client.
func New(cli openai.Client, model string) *Resolver {
	return &Resolver{
		cli:   cli,
		model: openai.ChatModel(model),
	}
}

var _ resolver.Resolver = (*Resolver)(nil)

// Resolve runs one constrained completion. Any model failure, refusal
// or unusable tool call maps to a KindNone action; the pipeline never
// sees a resolver error.
func (r *Resolver) Resolve(ctx context.Context, conv chat.Conversation) resolver.Action {
	if conv.IsEmpty() {
		return resolver.None("empty message")
	}

	msgs := buildMessages(conv)
	tools := toolDefinitions()

	start := time.Now()
	resp, err := r.cli.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    r.model,
		Messages: msgs,
		Tools:    tools,
	})
	if err != nil {
		slog.WarnContext(ctx, "Model call failed during resolution", "error", err)
		return resolver.None("resolver unavailable")
	}

	slog.InfoContext(ctx, "Model resolution completed",
		"model", string(r.model),
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	if len(resp.Choices) == 0 {
		return resolver.None("no choices returned by model")
	}

	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		// The model answered in prose instead of picking a function,
		// which means it could not pin down a city.
		return resolver.None("city not found")
	}

	// Single-action resolution per turn: only the first call counts.
	return actionFromToolCall(calls[0].Function.Name, calls[0].Function.Arguments)
}

// buildMessages converts the canonical conversation into provider
// message params. Translation to the provider shape lives here and
// nowhere else.
func buildMessages(conv chat.Conversation) []openai.ChatCompletionMessageParamUnion {
	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	for _, msg := range conv {
		switch msg.Role {
		case chat.RoleUser:
			msgs = append(msgs, openai.UserMessage(msg.Content))
		case chat.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(msg.Content))
		}
	}
	return msgs
}

func toolDefinitions() []openai.ChatCompletionToolUnionParam {
	cityParams := openai.FunctionParameters(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"city": map[string]interface{}{
				"type": "string",
			},
		},
		"required": []string{"city"},
	})

	return []openai.ChatCompletionToolUnionParam{
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        toolCurrentWeather,
			Description: openai.String("Get current weather for a city"),
			Parameters:  cityParams,
		}),
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        toolForecast,
			Description: openai.String("Get weather forecast for a city"),
			Parameters:  cityParams,
		}),
	}
}

// actionFromToolCall maps a function call back onto the Action variant.
func actionFromToolCall(name, arguments string) resolver.Action {
	var args struct {
		City string `json:"city"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return resolver.None("malformed tool arguments")
	}
	if args.City == "" {
		return resolver.None("city not found")
	}

	switch name {
	case toolCurrentWeather:
		return resolver.CurrentWeather(args.City)
	case toolForecast:
		return resolver.Forecast(args.City)
	default:
		return resolver.None("unknown tool: " + name)
	}
}
