package api

import (
	"encoding/json"
	"net/http"

	"github.com/XxAngels218/weatherbot-backend/internal/chat"
)

// chatMessage is the wire shape of one message. Role is constrained at
// the transport boundary; the canonical model stays validation-free.
type chatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages" validate:"required,min=1,dive"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat handles POST /api/chat. The orchestrator's output is always
// HTTP 200; only malformed payloads get an error status.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusInternalServerError, "invalid request body: "+err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeDetail(w, http.StatusInternalServerError, "invalid request: "+err.Error())
		return
	}

	conv := make(chat.Conversation, 0, len(req.Messages))
	for _, m := range req.Messages {
		conv = append(conv, chat.Message{Role: chat.Role(m.Role), Content: m.Content})
	}

	reply := h.processor.Process(r.Context(), conv)
	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}
