package dto

import (
	"errors"
	"fmt"
)

// ErrSessionNotReady guards every action gated on a resolved session. The
// user retries after bootstrap succeeds; nothing is queued.
var ErrSessionNotReady = errors.New("session not ready")

// ErrAnalysisInFlight rejects a second submit while a batch is running.
var ErrAnalysisInFlight = errors.New("an analysis batch is already running")

// ValidationError is detected client-side before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// RemoteRequestError carries the backend's localized error pair for a
// non-2xx response, or wraps the transport error when the call never
// completed (StatusCode 0).
type RemoteRequestError struct {
	StatusCode int
	Message    string
	MessageID  string
	Err        error
}

func (e *RemoteRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote request failed: %v", e.Err)
	}
	return fmt.Sprintf("remote request failed (%d): %s", e.StatusCode, e.Message)
}

func (e *RemoteRequestError) Unwrap() error {
	return e.Err
}

// BatchAbortError aborts the remaining artifacts of a multi-item batch.
// Results already collected in the batch are discarded, not exposed.
type BatchAbortError struct {
	Index int // zero-based index of the failing artifact
	Total int
	Err   error
}

func (e *BatchAbortError) Error() string {
	return fmt.Sprintf("batch aborted at artifact %d of %d: %v", e.Index+1, e.Total, e.Err)
}

func (e *BatchAbortError) Unwrap() error {
	return e.Err
}
