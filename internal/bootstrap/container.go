package bootstrap

import (
	"fmt"
	"path/filepath"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/config"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/pkg/logger"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/service"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/store"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/events"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/scoring"
)

type Container struct {
	Logger logger.ILogger
	Bus    *events.Bus

	SessionService  service.ISessionService
	AnalysisService service.IAnalysisService
	ChatService     service.IChatService

	identity *store.IdentityStore
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	cleanupLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "chat_cleanup.log"))

	// 2. Event Bus
	bus := events.NewBus()

	// 3. Local state
	identity, err := store.NewIdentityStore(cfg.App.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open identity store: %w", err)
	}
	resultCache := store.NewResultCache(cfg.Analysis.ResultCacheTTL)

	// 4. Backend client
	client := scoring.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout)

	// 5. Services
	sessionService := service.NewSessionService(client, identity, bus, sysLogger)
	analysisService := service.NewAnalysisService(client, sessionService, resultCache, bus, sysLogger, cfg.Analysis)
	chatService := service.NewChatService(client, sessionService, bus, sysLogger, cleanupLogger, cfg.Chat)

	return &Container{
		Logger:          sysLogger,
		Bus:             bus,
		SessionService:  sessionService,
		AnalysisService: analysisService,
		ChatService:     chatService,
		identity:        identity,
	}, nil
}

// Shutdown tears the container down: the advisory chat clear fires, timers
// and the bus close, buffers flush. Safe to call once at process exit.
func (c *Container) Shutdown() {
	c.ChatService.Detach()
	if err := c.Bus.Close(); err != nil {
		c.Logger.Warn("bootstrap", "bus close failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := c.identity.Close(); err != nil {
		c.Logger.Warn("bootstrap", "identity store close failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	_ = c.Logger.Sync()
}
