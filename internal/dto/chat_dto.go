package dto

import "github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"

type SendChatRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Message   string `json:"message" validate:"required"`
	Mode      string `json:"mode" validate:"required,oneof=creator academic hybrid social"`
}

type SendChatResponse struct {
	Session   *entity.Session `json:"session,omitempty"`
	Reply     string          `json:"reply"`
	IsOnTopic bool            `json:"isOnTopic"`
}

// ChatReply is what ChatSessionChannel hands back to callers: the assistant
// reply plus the advisory topic flag. The session update inside the response
// body is applied through the session manager, never exposed here.
type ChatReply struct {
	Reply     string
	IsOnTopic bool
}
