package services

import (
	"fmt"
	"io"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lionweb-cli/internal/logger"
)

// Ensure DeserializeService implements the interface.
var _ driving.DeserializeService = (*DeserializeService)(nil)

// FactoryProvider returns the NodeFactory for one deserializer run.
type FactoryProvider func() driven.NodeFactory

// DeserializeService reads chunk files and deserializes them against a
// fixed set of languages.
type DeserializeService struct {
	reader       driven.ChunkReader
	index        *SchemaIndex
	deserializer *Deserializer
	newFactory   FactoryProvider
}

// NewDeserializeService creates a deserialize service. Every run gets a
// factory from newFactory.
func NewDeserializeService(
	reader driven.ChunkReader,
	index *SchemaIndex,
	newFactory FactoryProvider,
	opts ...DeserializerOption,
) *DeserializeService {
	return &DeserializeService{
		reader:       reader,
		index:        index,
		deserializer: NewDeserializer(index, nil, opts...),
		newFactory:   newFactory,
	}
}

// Deserialize runs the deserializer over an already decoded chunk.
func (s *DeserializeService) Deserialize(chunk *domain.Chunk, dependents []domain.Node) (*domain.DeserializeResult, error) {
	if chunk != nil {
		s.checkUsedLanguages(chunk)
	}
	return s.deserializer.Run(chunk, s.newFactory(), dependents)
}

// DeserializeFile reads the chunk at path and deserializes it.
func (s *DeserializeService) DeserializeFile(path string, dependents []domain.Node) (*domain.DeserializeResult, error) {
	logger.Section("Deserialize " + path)

	chunk, err := s.reader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chunk %s: %w", path, err)
	}
	result, err := s.Deserialize(chunk, dependents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// DeserializeReader reads one chunk from r and deserializes it.
func (s *DeserializeService) DeserializeReader(r io.Reader, dependents []domain.Node) (*domain.DeserializeResult, error) {
	chunk, err := s.reader.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read chunk: %w", err)
	}
	return s.Deserialize(chunk, dependents)
}

// Languages returns the languages chunks are deserialized against.
func (s *DeserializeService) Languages() []domain.Language {
	return s.index.Languages()
}

// checkUsedLanguages logs used languages that no indexed language matches.
// Such chunks still deserialize as far as their classifiers resolve.
func (s *DeserializeService) checkUsedLanguages(chunk *domain.Chunk) {
	known := make(map[domain.UsedLanguage]bool)
	for _, lang := range s.index.Languages() {
		known[lang.Ref()] = true
	}
	for _, used := range chunk.Languages {
		if !known[used] {
			logger.Info("Chunk uses language %s which was not loaded", used)
		}
	}
}
