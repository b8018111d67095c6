package events

import "time"

// Event defines the contract for all in-process events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "CHAT_PREFILL").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeChatPrefill       = "CHAT_PREFILL"
	TypeSessionUpdated    = "SESSION_UPDATED"
	TypeAnalysisCompleted = "ANALYSIS_COMPLETED"
)

// ChatPrefillRequested asks the chat channel to open with a message already
// typed in. Published by whichever component wants the conversation started;
// neither side holds a reference to the other.
type ChatPrefillRequested struct {
	Message    string
	Mode       string
	OccurredAt time.Time
}

func (e ChatPrefillRequested) EventType() string { return TypeChatPrefill }

func (e ChatPrefillRequested) Payload() map[string]interface{} {
	return map[string]interface{}{
		"message": e.Message,
		"mode":    e.Mode,
	}
}

func (e ChatPrefillRequested) Timestamp() time.Time { return e.OccurredAt }

// SessionUpdated announces that the session manager applied a fresher
// server-acknowledged session record.
type SessionUpdated struct {
	SessionID        string
	FreeRequestsUsed int
	OccurredAt       time.Time
}

func (e SessionUpdated) EventType() string { return TypeSessionUpdated }

func (e SessionUpdated) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":         e.SessionID,
		"free_requests_used": e.FreeRequestsUsed,
	}
}

func (e SessionUpdated) Timestamp() time.Time { return e.OccurredAt }

// AnalysisCompleted announces a fully settled batch.
type AnalysisCompleted struct {
	SessionID    string
	ResultCount  int
	PrimaryScore float64
	OccurredAt   time.Time
}

func (e AnalysisCompleted) EventType() string { return TypeAnalysisCompleted }

func (e AnalysisCompleted) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":    e.SessionID,
		"result_count":  e.ResultCount,
		"primary_score": e.PrimaryScore,
	}
}

func (e AnalysisCompleted) Timestamp() time.Time { return e.OccurredAt }
