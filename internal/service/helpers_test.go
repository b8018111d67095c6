package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/config"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/dto"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/store"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/scoring"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeBackend is an in-memory stand-in for the scoring service, covering
// every endpoint the client consumes.
type fakeBackend struct {
	mu sync.Mutex

	server *httptest.Server

	sessionID        string
	freeRequestsUsed int

	analyzeCalls int
	failAtCall   int // 1-based analyze call that returns 500; 0 = never

	chatReply     string
	chatOnTopic   bool
	chatMessages  []*entity.ChatMessage
	historyCalls  int
	clearCalls    int
	sessionCalls  int
	lastBootstrap string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	b := &fakeBackend{
		sessionID:   "s1",
		chatReply:   "happy to help",
		chatOnTopic: true,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", b.handleSession)
	mux.HandleFunc("POST /analyze", b.handleAnalyze)
	mux.HandleFunc("POST /chat", b.handleChat)
	mux.HandleFunc("GET /chats/{id}", b.handleHistory)
	mux.HandleFunc("DELETE /chats/{id}", b.handleClear)

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) client() *scoring.Client {
	return scoring.NewClient(b.server.URL, 5*time.Second)
}

func (b *fakeBackend) session() *entity.Session {
	return &entity.Session{
		SessionID:        b.sessionID,
		FreeRequestsUsed: b.freeRequestsUsed,
		CreatedAt:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (b *fakeBackend) handleSession(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req dto.BootstrapSessionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	b.sessionCalls++
	b.lastBootstrap = req.SessionID
	if req.SessionID != "" {
		// idempotent reattachment
		b.sessionID = req.SessionID
	}
	json.NewEncoder(w).Encode(b.session())
}

func (b *fakeBackend) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.analyzeCalls++
	if b.failAtCall != 0 && b.analyzeCalls == b.failAtCall {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(dto.ErrorResponse{
			Message:   "scoring failed",
			MessageID: "penilaian gagal",
		})
		return
	}

	b.freeRequestsUsed++
	layers := make([]entity.LayerResult, entity.LayerCount)
	for i := range layers {
		layers[i] = entity.LayerResult{
			Layer:    fmt.Sprintf("layer-%d", i+1),
			Score:    float64(i + 1),
			Feedback: "ok",
		}
	}
	json.NewEncoder(w).Encode(dto.AnalyzeResponse{
		Session: b.session(),
		Analysis: &entity.AnalysisResult{
			OverallScore: 7.5,
			Layers:       layers,
			Summary:      "balanced overall",
		},
	})
}

func (b *fakeBackend) handleChat(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req dto.SendChatRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	onTopic := b.chatOnTopic
	if strings.Contains(strings.ToLower(req.Message), "weather") {
		onTopic = false
	}

	b.chatMessages = append(b.chatMessages,
		&entity.ChatMessage{
			ID: fmt.Sprintf("m%d", len(b.chatMessages)+1), SessionID: req.SessionID,
			Role: entity.ChatRoleUser, Message: req.Message, Position: len(b.chatMessages),
		},
		&entity.ChatMessage{
			ID: fmt.Sprintf("m%d", len(b.chatMessages)+2), SessionID: req.SessionID,
			Role: entity.ChatRoleAssistant, Message: b.chatReply, Position: len(b.chatMessages) + 1,
		},
	)

	json.NewEncoder(w).Encode(dto.SendChatResponse{
		Session:   b.session(),
		Reply:     b.chatReply,
		IsOnTopic: onTopic,
	})
}

func (b *fakeBackend) handleHistory(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.historyCalls++
	if b.chatMessages == nil {
		json.NewEncoder(w).Encode([]*entity.ChatMessage{})
		return
	}
	json.NewEncoder(w).Encode(b.chatMessages)
}

func (b *fakeBackend) handleClear(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearCalls++
	b.chatMessages = nil
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) getAnalyzeCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.analyzeCalls
}

func (b *fakeBackend) getClearCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clearCalls
}

func (b *fakeBackend) getLastBootstrap() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBootstrap
}

func (b *fakeBackend) setFailAtCall(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failAtCall = n
}

func newTestSessionService(t *testing.T, b *fakeBackend) ISessionService {
	identity, err := store.NewIdentityStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { identity.Close() })
	return NewSessionService(b.client(), identity, nil, nopLogger{})
}

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		TextTickInterval:  5 * time.Millisecond,
		MediaTickInterval: 5 * time.Millisecond,
		MinTextLength:     10,
		ResultCacheTTL:    time.Minute,
	}
}
