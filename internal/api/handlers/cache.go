package handlers

import (
	"sync"
	"time"

	"power-switch/internal/api/models"
)

// analysisCache keeps recently computed analyses in memory so the PDF
// report endpoint can serve them by id without re-uploading the meter
// file. Entries expire; the audit log is the durable record.
type analysisCache struct {
	mu    sync.RWMutex
	store map[string]cachedAnalysis
	ttl   time.Duration
}

type cachedAnalysis struct {
	response  models.RecommendResponse
	expiresAt time.Time
}

func newAnalysisCache(ttl time.Duration) *analysisCache {
	c := &analysisCache{
		store: make(map[string]cachedAnalysis),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

func (c *analysisCache) Put(resp models.RecommendResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[resp.ID] = cachedAnalysis{
		response:  resp,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *analysisCache) Get(id string) (models.RecommendResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.store[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return models.RecommendResponse{}, false
	}
	return entry.response, true
}

func (c *analysisCache) cleanup() {
	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for id, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, id)
			}
		}
		c.mu.Unlock()
	}
}
