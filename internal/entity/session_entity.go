package entity

import "time"

// Session is the anonymous client identity issued by the scoring backend.
// SessionID is immutable after allocation; FreeRequestsUsed only ever grows
// and is updated exclusively from server acknowledgments.
type Session struct {
	SessionID        string    `json:"sessionId"`
	FreeRequestsUsed int       `json:"freeRequestsUsed"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
