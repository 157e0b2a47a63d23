package driven

import (
	"io"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// ChunkReader decodes serialization chunks from their wire format.
// Readers check the shape of the input only; versions and schema
// conformance are the deserializer's concern.
type ChunkReader interface {
	// Read decodes one chunk.
	Read(r io.Reader) (*domain.Chunk, error)

	// ReadFile decodes the chunk stored at path.
	ReadFile(path string) (*domain.Chunk, error)
}
