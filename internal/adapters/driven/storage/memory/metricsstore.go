package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
)

// Ensure MetricsStore implements the interface.
var _ driven.MetricsStore = (*MetricsStore)(nil)

// MetricsStore is an in-memory implementation of driven.MetricsStore.
type MetricsStore struct {
	mu   sync.RWMutex
	runs map[string]domain.MetricsRun
}

// NewMetricsStore creates a new in-memory metrics store.
func NewMetricsStore() *MetricsStore {
	return &MetricsStore{
		runs: make(map[string]domain.MetricsRun),
	}
}

// Save stores or replaces a run.
func (s *MetricsStore) Save(_ context.Context, run *domain.MetricsRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = *run
	return nil
}

// Get retrieves a run by ID.
func (s *MetricsStore) Get(_ context.Context, id string) (*domain.MetricsRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// List returns all runs, newest first.
func (s *MetricsStore) List(_ context.Context) ([]domain.MetricsRun, error) {
	return s.filter(func(domain.MetricsRun) bool { return true }), nil
}

// ListByChunk returns the runs of one chunk file, newest first.
func (s *MetricsStore) ListByChunk(_ context.Context, chunkPath string) ([]domain.MetricsRun, error) {
	return s.filter(func(r domain.MetricsRun) bool { return r.ChunkPath == chunkPath }), nil
}

// Delete removes a run.
func (s *MetricsStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	return nil
}

func (s *MetricsStore) filter(keep func(domain.MetricsRun) bool) []domain.MetricsRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.MetricsRun, 0, len(s.runs))
	for _, run := range s.runs {
		if keep(run) {
			result = append(result, run)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
