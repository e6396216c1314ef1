// Package api holds the channel adapters: the JSON chat API and the
// Twilio messaging webhook. Handlers translate transport payloads into
// conversations, hand them to the turn processor and wrap the reply in
// the channel envelope. All decision logic lives behind TurnProcessor.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/XxAngels218/weatherbot-backend/internal/chat"
	"github.com/XxAngels218/weatherbot-backend/internal/twilio"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// TurnProcessor is the orchestrator boundary the handlers depend on.
// Process always returns reply text; failures are in-band.
type TurnProcessor interface {
	Process(ctx context.Context, conv chat.Conversation) string
}

// AccountVerifier is the outbound-channel credential check used by the
// webhook status endpoint.
type AccountVerifier interface {
	FetchAccount(ctx context.Context) (*twilio.Account, error)
	PhoneNumber() string
}

// Handler serves both channels.
type Handler struct {
	processor TurnProcessor
	messaging AccountVerifier
	validate  *validator.Validate
}

// NewHandler creates the channel handlers around a shared turn
// processor and the outbound-messaging client.
func NewHandler(processor TurnProcessor, messaging AccountVerifier) *Handler {
	return &Handler{
		processor: processor,
		messaging: messaging,
		validate:  validator.New(),
	}
}

// Register wires all routes into the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/api/chat", h.Chat).Methods(http.MethodPost)
	r.HandleFunc("/webhook/whatsapp", h.Webhook).Methods(http.MethodPost)
	r.HandleFunc("/webhook/whatsapp/status", h.WebhookStatus).Methods(http.MethodGet)
}

// Root greets API explorers.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to WeatherBot API"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response body", "error", err)
	}
}

// writeDetail reports a transport-layer failure. This is the only class
// of failure surfaced as an HTTP error status: everything past payload
// parsing is answered in-band by the turn processor.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
