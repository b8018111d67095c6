package dto

import "github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"

// AnalyzeTextRequest is the structured-text body for POST /analyze. File
// artifacts go out as multipart instead, with the same scalar fields.
type AnalyzeTextRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Mode      string `json:"mode" validate:"required,oneof=creator academic hybrid social"`
	InputType string `json:"inputType" validate:"required"`
	Content   string `json:"content"`
}

type AnalyzeResponse struct {
	Session  *entity.Session        `json:"session"`
	Analysis *entity.AnalysisResult `json:"analysis"`
}

// ErrorResponse is the non-2xx body shape shared by all backend endpoints.
// Message and MessageID are two localized renderings of the same error.
type ErrorResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}
