package store

import (
	"context"
	"sync"
)

// Memory is the in-process audit log used when no database is
// configured, and by tests.
type Memory struct {
	mu   sync.RWMutex
	recs []AnalysisRecord
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Log(_ context.Context, rec AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

func (m *Memory) Recent(_ context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]AnalysisRecord, 0, limit)
	for i := len(m.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.recs[i])
	}
	return out, nil
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{ByProvider: map[string]int64{}}
	stats.Analyses = int64(len(m.recs))
	sum := 0.0
	for _, rec := range m.recs {
		sum += rec.MonthlySavingsNIS
		stats.ByProvider[rec.SelectedProvider]++
	}
	if stats.Analyses > 0 {
		stats.AvgMonthlySavingsNIS = sum / float64(stats.Analyses)
	}
	return stats, nil
}

func (m *Memory) Close() error { return nil }
