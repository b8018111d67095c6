package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/config"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/dto"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/pkg/logger"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/events"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/scoring"
)

const (
	ChatStateClosed  = "CLOSED"
	ChatStateOpen    = "OPEN"
	ChatStateSending = "SENDING"
)

// IChatService is the session-scoped conversational side-channel. Its state
// machine: CLOSED -> OPEN (history fetch) -> SENDING while a message is in
// flight -> OPEN idle. Close (ESC) returns to CLOSED without clearing
// history; Clear empties it explicitly; Detach fires the best-effort
// teardown clear.
type IChatService interface {
	Open(ctx context.Context) ([]*entity.ChatMessage, error)
	Send(ctx context.Context, message string) (*dto.ChatReply, error)
	Clear(ctx context.Context) error
	Close()
	Detach()
	State() string

	// ListenPrefill wires the channel to the event bus so any component can
	// request "open chat with this message" without referencing us.
	ListenPrefill(ctx context.Context) error
	OnPrefill(fn func(message string))
	TakePrefill() (string, bool)
}

type chatService struct {
	client   *scoring.Client
	sessions ISessionService
	bus      *events.Bus
	log      logger.ILogger
	cleanup  logger.ILogger // isolated log for teardown cleanup outcomes
	cfg      config.ChatConfig

	mu        sync.Mutex
	state     string
	prefill   string
	onPrefill func(string)
}

func NewChatService(
	client *scoring.Client,
	sessions ISessionService,
	bus *events.Bus,
	log logger.ILogger,
	cleanup logger.ILogger,
	cfg config.ChatConfig,
) IChatService {
	return &chatService{
		client:   client,
		sessions: sessions,
		bus:      bus,
		log:      log,
		cleanup:  cleanup,
		cfg:      cfg,
		state:    ChatStateClosed,
	}
}

func (s *chatService) Open(ctx context.Context) ([]*entity.ChatMessage, error) {
	session, ok := s.sessions.Current()
	if !ok {
		return nil, dto.ErrSessionNotReady
	}

	s.mu.Lock()
	s.state = ChatStateOpen
	s.mu.Unlock()

	history, err := s.client.ChatHistory(ctx, session.SessionID)
	if err != nil {
		s.mu.Lock()
		s.state = ChatStateClosed
		s.mu.Unlock()
		return nil, err
	}
	return history, nil
}

func (s *chatService) Send(ctx context.Context, message string) (*dto.ChatReply, error) {
	session, ok := s.sessions.Current()
	if !ok {
		return nil, dto.ErrSessionNotReady
	}

	s.mu.Lock()
	if s.state != ChatStateOpen {
		s.mu.Unlock()
		return nil, &dto.ValidationError{Reason: "chat is not open"}
	}
	s.state = ChatStateSending
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.state == ChatStateSending {
			s.state = ChatStateOpen
		}
		s.mu.Unlock()
	}()

	res, err := s.client.SendChat(ctx, &dto.SendChatRequest{
		SessionID: session.SessionID,
		Message:   message,
		Mode:      s.cfg.Mode,
	})
	if err != nil {
		return nil, err
	}

	if res.Session != nil {
		s.sessions.Apply(res.Session)
	}
	if !res.IsOnTopic {
		s.log.Info("chat", "off-topic exchange", map[string]interface{}{
			"session_id": session.SessionID,
		})
	}

	return &dto.ChatReply{
		Reply:     res.Reply,
		IsOnTopic: res.IsOnTopic,
	}, nil
}

// Clear empties the history immediately. Independent of session teardown.
func (s *chatService) Clear(ctx context.Context) error {
	session, ok := s.sessions.Current()
	if !ok {
		return dto.ErrSessionNotReady
	}
	if err := s.client.ClearChat(ctx, session.SessionID); err != nil {
		return err
	}
	s.log.Info("chat", "history cleared", map[string]interface{}{
		"session_id": session.SessionID,
	})
	return nil
}

// Close is the ESC path: back to CLOSED, history untouched.
func (s *chatService) Close() {
	s.mu.Lock()
	s.state = ChatStateClosed
	s.mu.Unlock()
}

// Detach fires the advisory teardown clear on a detached context. The
// outcome is never surfaced: the user is already leaving. Delivery is
// best-effort by contract, no retry, no acknowledgment.
func (s *chatService) Detach() {
	session, ok := s.sessions.Current()
	if !ok {
		return
	}
	if err := s.client.ClearChatDetached(session.SessionID, s.cfg.DetachTimeout); err != nil {
		s.cleanup.Debug("chat", "teardown clear not delivered", map[string]interface{}{
			"session_id": session.SessionID,
			"error":      err.Error(),
		})
		return
	}
	s.cleanup.Info("chat", "teardown clear delivered", map[string]interface{}{
		"session_id": session.SessionID,
	})
}

func (s *chatService) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *chatService) ListenPrefill(ctx context.Context) error {
	return s.bus.Subscribe(ctx, events.TypeChatPrefill, func(payload []byte) {
		var body struct {
			Message string `json:"message"`
			Mode    string `json:"mode"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			s.log.Warn("chat", "malformed prefill event", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}

		s.mu.Lock()
		s.prefill = body.Message
		fn := s.onPrefill
		s.mu.Unlock()

		if fn != nil {
			fn(body.Message)
		}
	})
}

func (s *chatService) OnPrefill(fn func(message string)) {
	s.mu.Lock()
	s.onPrefill = fn
	s.mu.Unlock()
}

// TakePrefill consumes the pending prefilled message, if any.
func (s *chatService) TakePrefill() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefill == "" {
		return "", false
	}
	msg := s.prefill
	s.prefill = ""
	return msg, true
}
