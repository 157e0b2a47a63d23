package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lionweb-cli/internal/logger"
)

// Ensure MeasureService implements the interface.
var _ driving.MeasureService = (*MeasureService)(nil)

// MeasureService counts classifier instantiations of chunks.
type MeasureService struct {
	reader driven.ChunkReader
	index  *SchemaIndex
	store  driven.MetricsStore
	now    func() time.Time
}

// NewMeasureService creates a measure service. store may be nil, in which
// case runs are never recorded.
func NewMeasureService(reader driven.ChunkReader, index *SchemaIndex, store driven.MetricsStore) *MeasureService {
	return &MeasureService{
		reader: reader,
		index:  index,
		store:  store,
		now:    time.Now,
	}
}

// Measure groups the chunk's nodes by classifier in first-seen order and
// lists the concrete concepts no node instantiates.
func (s *MeasureService) Measure(chunk *domain.Chunk) domain.ChunkMetrics {
	metrics := domain.ChunkMetrics{
		Instantiations:         []domain.ClassifierInstantiation{},
		UnusedConcreteConcepts: []domain.MetaPointer{},
	}
	if chunk == nil {
		return metrics
	}

	position := make(map[domain.MetaPointer]int)
	for i := range chunk.Nodes {
		ptr := chunk.Nodes[i].Classifier
		if at, ok := position[ptr]; ok {
			metrics.Instantiations[at].Count++
			continue
		}
		inst := domain.ClassifierInstantiation{
			Key:      ptr.Key,
			Language: ptr.Language,
			Version:  ptr.Version,
			Count:    1,
		}
		if c, ok := s.index.ResolveClassifier(ptr); ok {
			inst.Name = c.Name
		}
		position[ptr] = len(metrics.Instantiations)
		metrics.Instantiations = append(metrics.Instantiations, inst)
	}

	for _, c := range s.index.Concepts() {
		if !c.IsConcrete() {
			continue
		}
		if _, used := position[c.Pointer()]; !used {
			metrics.UnusedConcreteConcepts = append(metrics.UnusedConcreteConcepts, c.Pointer())
		}
	}

	return metrics
}

// MeasureFile reads and measures the chunk at path.
func (s *MeasureService) MeasureFile(ctx context.Context, path string, record bool) (*domain.MetricsRun, error) {
	chunk, err := s.reader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chunk %s: %w", path, err)
	}

	run := &domain.MetricsRun{
		ID:        uuid.New().String(),
		ChunkPath: path,
		Metrics:   s.Measure(chunk),
		CreatedAt: s.now(),
	}
	logger.Debug("Measured %s: %d nodes of %d classifiers", path, run.Metrics.TotalNodes(), len(run.Metrics.Instantiations))

	if record && s.store != nil {
		if err := s.store.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("record metrics: %w", err)
		}
	}
	return run, nil
}

// History returns recorded runs, newest first.
func (s *MeasureService) History(ctx context.Context, chunkPath string) ([]domain.MetricsRun, error) {
	if s.store == nil {
		return nil, nil
	}
	if chunkPath == "" {
		return s.store.List(ctx)
	}
	return s.store.ListByChunk(ctx, chunkPath)
}

// Run returns one recorded run.
func (s *MeasureService) Run(ctx context.Context, id string) (*domain.MetricsRun, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Delete removes a recorded run. Unknown ids yield domain.ErrNotFound.
func (s *MeasureService) Delete(ctx context.Context, id string) error {
	if _, err := s.Run(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete metrics run %s: %w", id, err)
	}
	logger.Debug("Deleted metrics run %s", id)
	return nil
}
