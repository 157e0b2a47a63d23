package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/factory/dynamic"
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driving"
)

var (
	_ driving.DeserializeService = (*mockDeserializeService)(nil)
	_ driving.MeasureService     = (*mockMeasureService)(nil)
)

type mockDeserializeService struct {
	results   map[string]*domain.DeserializeResult
	err       error
	languages []domain.Language

	calls      []string
	dependents [][]domain.Node
}

func (m *mockDeserializeService) Deserialize(_ *domain.Chunk, _ []domain.Node) (*domain.DeserializeResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDeserializeService) DeserializeFile(path string, dependents []domain.Node) (*domain.DeserializeResult, error) {
	m.calls = append(m.calls, path)
	m.dependents = append(m.dependents, dependents)
	if m.err != nil {
		return nil, m.err
	}
	result, ok := m.results[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return result, nil
}

func (m *mockDeserializeService) Languages() []domain.Language {
	return m.languages
}

type mockMeasureService struct {
	run  *domain.MetricsRun
	runs []domain.MetricsRun
	err  error

	recorded bool
	lookups  []string
}

func (m *mockMeasureService) Measure(_ *domain.Chunk) domain.ChunkMetrics {
	return domain.ChunkMetrics{}
}

func (m *mockMeasureService) MeasureFile(_ context.Context, _ string, record bool) (*domain.MetricsRun, error) {
	m.recorded = record
	if m.err != nil {
		return nil, m.err
	}
	return m.run, nil
}

func (m *mockMeasureService) History(_ context.Context, _ string) ([]domain.MetricsRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.runs, nil
}

var bookConcept = &domain.Classifier{
	Kind:     domain.ClassifierConcept,
	Key:      "Book",
	Name:     "Book",
	Language: domain.UsedLanguage{Key: "shelf", Version: "1"},
}

var (
	titleFeature  = &domain.Feature{Kind: domain.FeatureProperty, Key: "title"}
	partsFeature  = &domain.Feature{Kind: domain.FeatureContainment, Key: "parts", Multiple: true}
	authorFeature = &domain.Feature{Kind: domain.FeatureReference, Key: "author"}
)

// bookResult builds a root b1 with children c1 and c2, where c2 refers to w1.
func bookResult(t *testing.T) *domain.DeserializeResult {
	t.Helper()
	f := dynamic.NewFactory()

	root, err := f.CreateNode(nil, bookConcept, "b1", map[string]any{"title": "Dune"})
	require.NoError(t, err)
	for _, id := range []string{"c1", "c2"} {
		child, err := f.CreateNode(root, bookConcept, id, nil)
		require.NoError(t, err)
		require.NoError(t, f.SetFeatureValue(root, partsFeature, child))
	}

	writer, err := f.CreateNode(nil, bookConcept, "w1", nil)
	require.NoError(t, err)
	c2 := root.(*dynamic.Node).Children("parts")[1]
	require.NoError(t, f.SetFeatureValue(c2, authorFeature, writer))
	require.NoError(t, f.SetFeatureValue(root, titleFeature, "Dune"))

	return &domain.DeserializeResult{
		Roots: []domain.Node{root},
		Stats: domain.DeserializeStats{Roots: 1, Nodes: 3, Links: 1},
	}
}

func testMetrics() domain.ChunkMetrics {
	return domain.ChunkMetrics{
		Instantiations: []domain.ClassifierInstantiation{
			{Name: "Book", Key: "Book", Language: "shelf", Version: "1", Count: 3},
		},
		UnusedConcreteConcepts: []domain.MetaPointer{{Language: "shelf", Version: "1", Key: "Writer"}},
	}
}

func testRun(id string) domain.MetricsRun {
	return domain.MetricsRun{
		ID:        id,
		ChunkPath: "books.json",
		Metrics:   testMetrics(),
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func engineFor(deserialize *mockDeserializeService, measure *mockMeasureService) EngineFunc {
	return func(_ []string) (*Engine, error) {
		return &Engine{Deserialize: deserialize, Measure: measure}, nil
	}
}

func (m *mockMeasureService) Run(_ context.Context, id string) (*domain.MetricsRun, error) {
	m.lookups = append(m.lookups, id)
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockMeasureService) Delete(ctx context.Context, id string) error {
	_, err := m.Run(ctx, id)
	return err
}
