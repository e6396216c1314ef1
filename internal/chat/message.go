package chat

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message. Immutable once created.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered, non-empty sequence of messages. The last
// element is the pending turn awaiting a reply; everything before it is
// history supplied as context only.
type Conversation []Message

// Pending returns the message awaiting a reply, or false for an empty
// conversation.
func (c Conversation) Pending() (Message, bool) {
	if len(c) == 0 {
		return Message{}, false
	}
	return c[len(c)-1], true
}

// History returns every message before the pending turn.
func (c Conversation) History() []Message {
	if len(c) <= 1 {
		return nil
	}
	return c[:len(c)-1]
}

// IsEmpty reports whether the conversation has no pending turn worth
// answering: no messages at all, or a blank pending message.
func (c Conversation) IsEmpty() bool {
	pending, ok := c.Pending()
	return !ok || strings.TrimSpace(pending.Content) == ""
}
