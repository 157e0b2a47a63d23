package driving

import (
	"context"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// MeasureService computes how chunks use their languages.
type MeasureService interface {
	// Measure counts classifier instantiations of a decoded chunk.
	Measure(chunk *domain.Chunk) domain.ChunkMetrics

	// MeasureFile reads and measures the chunk at path. When record is true
	// the run is persisted to the metrics store.
	MeasureFile(ctx context.Context, path string, record bool) (*domain.MetricsRun, error)

	// History returns recorded runs, newest first. An empty path returns
	// runs for all chunks.
	History(ctx context.Context, chunkPath string) ([]domain.MetricsRun, error)

	// Run returns one recorded run, or domain.ErrNotFound.
	Run(ctx context.Context, id string) (*domain.MetricsRun, error)

	// Delete removes a recorded run, or returns domain.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
