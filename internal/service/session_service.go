package service

import (
	"context"
	"sync"
	"time"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/pkg/logger"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/store"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/events"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/scoring"
)

// ISessionService owns the anonymous session record. It is the single writer:
// other components propose fresher server-acknowledged records through Apply
// and read snapshots through Current, never holding a mutable reference.
type ISessionService interface {
	Bootstrap(ctx context.Context) (*entity.Session, error)
	Apply(session *entity.Session)
	Current() (*entity.Session, bool)
	Ready() bool
	Reset(ctx context.Context) error
}

type sessionService struct {
	client   *scoring.Client
	identity *store.IdentityStore
	bus      *events.Bus
	log      logger.ILogger

	mu      sync.RWMutex
	session *entity.Session
}

func NewSessionService(
	client *scoring.Client,
	identity *store.IdentityStore,
	bus *events.Bus,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		client:   client,
		identity: identity,
		bus:      bus,
		log:      log,
	}
}

// Bootstrap resolves the session: reattach when a stored identifier exists,
// allocate otherwise. On failure the session stays nil and every gated
// action keeps failing with ErrSessionNotReady; the next run reattaches.
func (s *sessionService) Bootstrap(ctx context.Context) (*entity.Session, error) {
	storedID, _, err := s.identity.Load()
	if err != nil {
		s.log.Warn("session", "failed to load stored identity, allocating fresh", map[string]interface{}{
			"error": err.Error(),
		})
		storedID = ""
	}

	session, err := s.client.BootstrapSession(ctx, storedID)
	if err != nil {
		s.log.Error("session", "bootstrap failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if storedID != "" && session.SessionID != storedID {
		// reattachment is idempotent by contract; a different identifier
		// means the backend discarded ours
		s.log.Warn("session", "stored identifier was not honored", map[string]interface{}{
			"stored":   storedID,
			"returned": session.SessionID,
		})
	}

	if err := s.identity.Save(session.SessionID, session.CreatedAt); err != nil {
		s.log.Warn("session", "failed to persist identity", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.setSession(session)

	s.log.Info("session", "session ready", map[string]interface{}{
		"session_id": session.SessionID,
		"reattached": storedID != "",
	})
	return session.Clone(), nil
}

// Apply replaces the in-memory record with a fresher server-acknowledged
// one. Last-applied-wins; an update for a different identity is rejected
// because SessionID is immutable within a browsing context.
func (s *sessionService) Apply(session *entity.Session) {
	if session == nil {
		return
	}

	s.mu.Lock()
	if s.session != nil && s.session.SessionID != session.SessionID {
		s.mu.Unlock()
		s.log.Warn("session", "ignoring update for foreign session", map[string]interface{}{
			"current":  s.session.SessionID,
			"proposed": session.SessionID,
		})
		return
	}
	s.session = session.Clone()
	s.mu.Unlock()

	s.publishUpdated(session)
}

func (s *sessionService) Current() (*entity.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, false
	}
	return s.session.Clone(), true
}

func (s *sessionService) Ready() bool {
	_, ok := s.Current()
	return ok
}

// Reset discards the client-local identity. The in-memory session is dropped
// too; the next Bootstrap allocates a fresh one.
func (s *sessionService) Reset(ctx context.Context) error {
	if err := s.identity.Discard(); err != nil {
		return err
	}
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	s.log.Info("session", "identity discarded", nil)
	return nil
}

func (s *sessionService) setSession(session *entity.Session) {
	s.mu.Lock()
	s.session = session.Clone()
	s.mu.Unlock()
	s.publishUpdated(session)
}

func (s *sessionService) publishUpdated(session *entity.Session) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(events.SessionUpdated{
		SessionID:        session.SessionID,
		FreeRequestsUsed: session.FreeRequestsUsed,
		OccurredAt:       time.Now(),
	})
	if err != nil {
		s.log.Warn("session", "failed to publish session update", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
