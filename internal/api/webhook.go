package api

import (
	"log/slog"
	"net/http"

	"github.com/XxAngels218/weatherbot-backend/internal/chat"
	"github.com/XxAngels218/weatherbot-backend/internal/twilio"
)

// Webhook handles the inbound WhatsApp message callback. Once the form
// parses, the response is always HTTP 200 TwiML: processing failures
// travel in-band as the reply body, the way the messaging provider
// expects.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusInternalServerError, "invalid form payload: "+err.Error())
		return
	}

	body := r.PostFormValue("Body")
	from := r.PostFormValue("From")
	if body == "" || from == "" {
		writeDetail(w, http.StatusInternalServerError, "missing required form fields: Body, From")
		return
	}

	slog.InfoContext(r.Context(), "Inbound webhook message", "from", from)

	conv := chat.Conversation{{Role: chat.RoleUser, Content: body}}
	reply := h.processor.Process(r.Context(), conv)

	envelope, err := twilio.Reply(reply)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to build reply envelope: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(envelope); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write webhook reply", "error", err)
	}
}

type webhookStatusResponse struct {
	Status      string `json:"status"`
	AccountID   string `json:"account_id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Message     string `json:"message,omitempty"`
}

// WebhookStatus verifies the outbound-messaging credential against the
// provider's account endpoint.
func (h *Handler) WebhookStatus(w http.ResponseWriter, r *http.Request) {
	account, err := h.messaging.FetchAccount(r.Context())
	if err != nil {
		slog.WarnContext(r.Context(), "Twilio credential check failed", "error", err)
		writeJSON(w, http.StatusOK, webhookStatusResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, webhookStatusResponse{
		Status:      "connected",
		AccountID:   account.SID,
		PhoneNumber: h.messaging.PhoneNumber(),
	})
}

var _ AccountVerifier = (*twilio.Client)(nil)
