package dto

import "github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"

type BootstrapSessionRequest struct {
	SessionID string `json:"sessionId,omitempty"`
}

type BootstrapSessionResponse = entity.Session
