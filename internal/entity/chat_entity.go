package entity

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one entry of the session-scoped conversation. Position is
// the server-assigned arrival order; the list is never reordered.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Position  int       `json:"orderedPosition"`
	CreatedAt time.Time `json:"createdAt"`
}
