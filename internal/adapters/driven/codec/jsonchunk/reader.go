package jsonchunk

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/validation"
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.ChunkReader = (*Reader)(nil)

// Reader decodes JSON chunks. A Reader is safe for concurrent use.
type Reader struct {
	validate *validator.Validate
}

// NewReader creates a JSON chunk reader.
func NewReader() *Reader {
	return &Reader{validate: validation.New("json")}
}

// Read decodes one chunk from r.
func (r *Reader) Read(in io.Reader) (*domain.Chunk, error) {
	var chunk domain.Chunk
	dec := json.NewDecoder(bufio.NewReader(in))
	if err := dec.Decode(&chunk); err != nil {
		return nil, fmt.Errorf("%w: decode chunk: %v", domain.ErrInvalidInput, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after chunk", domain.ErrInvalidInput)
	}
	if err := r.validate.Struct(&chunk); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validation.Describe(err))
	}
	return &chunk, nil
}

// ReadFile decodes the chunk stored at path.
func (r *Reader) ReadFile(path string) (*domain.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return r.Read(f)
}
