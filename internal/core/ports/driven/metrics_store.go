package driven

import (
	"context"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// MetricsStore persists chunk measurements.
type MetricsStore interface {
	// Save stores a measurement run.
	Save(ctx context.Context, run *domain.MetricsRun) error

	// Get retrieves a run by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.MetricsRun, error)

	// List returns all runs, newest first.
	List(ctx context.Context) ([]domain.MetricsRun, error)

	// ListByChunk returns the runs of one chunk file, newest first.
	ListByChunk(ctx context.Context, chunkPath string) ([]domain.MetricsRun, error)

	// Delete removes a run.
	Delete(ctx context.Context, id string) error
}
