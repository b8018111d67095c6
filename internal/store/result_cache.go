package store

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
)

// ResultCache keeps the last settled batch per session in memory so the
// reveal sequencer and the CLI can re-display it without resubmitting.
// Entries expire on their own; nothing here is durable.
type ResultCache struct {
	cache *cache.Cache
}

func NewResultCache(ttl time.Duration) *ResultCache {
	c := cache.New(ttl, 10*time.Minute)
	return &ResultCache{cache: c}
}

func (r *ResultCache) Save(sessionID string, results []*entity.AnalysisResult) {
	r.cache.Set(sessionID, results, cache.DefaultExpiration)
}

func (r *ResultCache) Get(sessionID string) ([]*entity.AnalysisResult, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.([]*entity.AnalysisResult), true
	}
	return nil, false
}

func (r *ResultCache) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
