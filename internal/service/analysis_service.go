package service

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/config"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/dto"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/pkg/logger"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/store"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/events"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/progress"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/pkg/scoring"
)

// ProgressFunc receives every simulated progress update of a running batch.
type ProgressFunc func(progress.State)

type IAnalysisService interface {
	// Submit processes the artifacts strictly sequentially against the
	// scoring endpoint and returns the ordered results, length len(artifacts).
	// Whole-batch semantics: the first failure aborts the rest and discards
	// results already collected in this batch.
	Submit(ctx context.Context, mode entity.AnalysisMode, artifacts []*entity.Artifact, onProgress ProgressFunc) ([]*entity.AnalysisResult, error)

	// LastResults returns the cached results of the most recent settled batch.
	LastResults() ([]*entity.AnalysisResult, bool)
}

type analysisService struct {
	client   *scoring.Client
	sessions ISessionService
	results  *store.ResultCache
	bus      *events.Bus
	log      logger.ILogger
	validate *validator.Validate
	cfg      config.AnalysisConfig

	inFlight atomic.Bool
}

func NewAnalysisService(
	client *scoring.Client,
	sessions ISessionService,
	results *store.ResultCache,
	bus *events.Bus,
	log logger.ILogger,
	cfg config.AnalysisConfig,
) IAnalysisService {
	return &analysisService{
		client:   client,
		sessions: sessions,
		results:  results,
		bus:      bus,
		log:      log,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *analysisService) Submit(
	ctx context.Context,
	mode entity.AnalysisMode,
	artifacts []*entity.Artifact,
	onProgress ProgressFunc,
) ([]*entity.AnalysisResult, error) {
	session, ok := s.sessions.Current()
	if !ok {
		return nil, dto.ErrSessionNotReady
	}

	// one pipeline per session at a time
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, dto.ErrAnalysisInFlight
	}
	defer s.inFlight.Store(false)

	if err := s.preflight(artifacts); err != nil {
		return nil, err
	}

	if onProgress == nil {
		onProgress = func(progress.State) {}
	}

	// artifacts own preview handles until the batch settles
	defer s.releaseAll(artifacts)

	total := len(artifacts)
	collected := make([]*entity.AnalysisResult, 0, total)

	for i, artifact := range artifacts {
		lower := float64(i) / float64(total) * 100
		upper := float64(i+1) / float64(total) * 100

		estimator := progress.NewEstimator(s.cadenceFor(artifact), onProgress)
		run := estimator.Start(i, total, lower, upper)

		res, err := s.analyzeOne(ctx, session.SessionID, mode, artifact)
		if err != nil {
			// reset to this item's floor and freeze; remaining artifacts
			// are never sent and earlier results are not exposed
			run.Abort()
			s.log.Error("analysis", "artifact failed, aborting batch", map[string]interface{}{
				"artifact": artifact.ID,
				"index":    i,
				"total":    total,
				"error":    err.Error(),
			})
			if i > 0 {
				return nil, &dto.BatchAbortError{Index: i, Total: total, Err: err}
			}
			return nil, err
		}

		run.Complete()
		collected = append(collected, res.Analysis)
		if res.Session != nil {
			s.sessions.Apply(res.Session)
		}
	}

	s.results.Save(session.SessionID, collected)
	s.publishCompleted(session.SessionID, collected)

	s.log.Info("analysis", "batch settled", map[string]interface{}{
		"session_id": session.SessionID,
		"results":    len(collected),
	})
	return collected, nil
}

func (s *analysisService) LastResults() ([]*entity.AnalysisResult, bool) {
	session, ok := s.sessions.Current()
	if !ok {
		return nil, false
	}
	return s.results.Get(session.SessionID)
}

// preflight runs the synchronous client-side checks. No network calls here.
func (s *analysisService) preflight(artifacts []*entity.Artifact) error {
	if len(artifacts) == 0 {
		return &dto.ValidationError{Reason: "no content to analyze"}
	}

	hasFile := false
	for _, a := range artifacts {
		if a.Kind == entity.ArtifactFile {
			hasFile = true
			break
		}
	}

	for _, a := range artifacts {
		if a.Kind != entity.ArtifactText || hasFile {
			continue
		}
		if len(strings.TrimSpace(a.Content)) < s.cfg.MinTextLength {
			return &dto.ValidationError{
				Reason: "text content is too short for a meaningful analysis",
			}
		}
	}
	return nil
}

func (s *analysisService) analyzeOne(
	ctx context.Context,
	sessionID string,
	mode entity.AnalysisMode,
	artifact *entity.Artifact,
) (*dto.AnalyzeResponse, error) {
	if artifact.Kind == entity.ArtifactFile {
		return s.client.AnalyzeFile(
			ctx,
			sessionID,
			string(mode),
			inputTypeFor(artifact),
			artifact.FilePath,
			artifact.Description,
		)
	}

	request := &dto.AnalyzeTextRequest{
		SessionID: sessionID,
		Mode:      string(mode),
		InputType: inputTypeFor(artifact),
		Content:   artifact.Content,
	}
	if err := s.validate.Struct(request); err != nil {
		return nil, &dto.ValidationError{Reason: err.Error()}
	}
	return s.client.AnalyzeText(ctx, request)
}

func (s *analysisService) cadenceFor(artifact *entity.Artifact) time.Duration {
	if artifact.Kind == entity.ArtifactFile {
		return s.cfg.MediaTickInterval
	}
	return s.cfg.TextTickInterval
}

func (s *analysisService) releaseAll(artifacts []*entity.Artifact) {
	for _, a := range artifacts {
		if err := a.Release(); err != nil {
			s.log.Warn("analysis", "failed to release artifact handle", map[string]interface{}{
				"artifact": a.ID,
				"error":    err.Error(),
			})
		}
	}
}

func (s *analysisService) publishCompleted(sessionID string, results []*entity.AnalysisResult) {
	if s.bus == nil || len(results) == 0 {
		return
	}
	err := s.bus.Publish(events.AnalysisCompleted{
		SessionID:    sessionID,
		ResultCount:  len(results),
		PrimaryScore: results[0].OverallScore,
		OccurredAt:   time.Now(),
	})
	if err != nil {
		s.log.Warn("analysis", "failed to publish completion event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
}

func inputTypeFor(artifact *entity.Artifact) string {
	if artifact.Kind == entity.ArtifactText {
		return "text"
	}
	if videoExtensions[strings.ToLower(filepath.Ext(artifact.FilePath))] {
		return "video"
	}
	return "file"
}
