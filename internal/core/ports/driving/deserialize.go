package driving

import (
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// DeserializeService turns chunk files into runtime node graphs.
type DeserializeService interface {
	// Deserialize runs the deserializer over an already decoded chunk.
	// Dependents are nodes of previously deserialized chunks that references
	// may resolve against.
	Deserialize(chunk *domain.Chunk, dependents []domain.Node) (*domain.DeserializeResult, error)

	// DeserializeFile reads the chunk at path and deserializes it.
	DeserializeFile(path string, dependents []domain.Node) (*domain.DeserializeResult, error)

	// Languages returns the languages chunks are deserialized against.
	Languages() []domain.Language
}
