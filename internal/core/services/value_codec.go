package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// ScalarDecoder turns a serialized property value into a runtime value.
type ScalarDecoder func(raw string) (any, error)

// errNoDecoder is the cause reported for primitive types without a decoder.
var errNoDecoder = errors.New("no decoder registered for primitive type")

// ValueCodec decodes property values by primitive type and maps enumeration
// values to their literals. Decoders are registered up front; the codec is
// read-only while deserializer runs use it.
type ValueCodec struct {
	decoders map[domain.MetaPointer]ScalarDecoder
}

// NewValueCodec creates a codec with decoders for the built-in primitive types.
func NewValueCodec() *ValueCodec {
	c := &ValueCodec{decoders: make(map[domain.MetaPointer]ScalarDecoder)}
	c.Register(domain.BuiltinPointer(domain.BuiltinString), decodeString)
	c.Register(domain.BuiltinPointer(domain.BuiltinBoolean), decodeBoolean)
	c.Register(domain.BuiltinPointer(domain.BuiltinInteger), decodeInteger)
	c.Register(domain.BuiltinPointer(domain.BuiltinJSON), decodeJSON)
	return c
}

// Register adds or replaces the decoder for a primitive type.
func (c *ValueCodec) Register(primitiveType domain.MetaPointer, decoder ScalarDecoder) {
	c.decoders[primitiveType] = decoder
}

// Has returns true if a decoder is registered for the primitive type.
func (c *ValueCodec) Has(primitiveType domain.MetaPointer) bool {
	_, ok := c.decoders[primitiveType]
	return ok
}

// DecodeScalar decodes raw for a property typed by primitiveType.
// Failures are returned as *domain.ScalarDecodeError.
func (c *ValueCodec) DecodeScalar(property *domain.Feature, raw string, primitiveType *domain.Classifier) (any, error) {
	decoder, ok := c.decoders[primitiveType.Pointer()]
	if !ok {
		return nil, &domain.ScalarDecodeError{
			PropertyKey: property.Key,
			RawValue:    raw,
			Err:         fmt.Errorf("%w %s", errNoDecoder, primitiveType.Pointer()),
		}
	}
	value, err := decoder(raw)
	if err != nil {
		return nil, &domain.ScalarDecodeError{PropertyKey: property.Key, RawValue: raw, Err: err}
	}
	return value, nil
}

// ResolveEnumerationLiteral returns the literal of enumeration whose key
// equals raw.
func (c *ValueCodec) ResolveEnumerationLiteral(raw string, enumeration *domain.Classifier) (*domain.EnumerationLiteral, bool) {
	for i := range enumeration.Literals {
		if enumeration.Literals[i].Key == raw {
			return &enumeration.Literals[i], true
		}
	}
	return nil, false
}

func decodeString(raw string) (any, error) {
	return raw, nil
}

func decodeBoolean(raw string) (any, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, fmt.Errorf("not a boolean: %q", raw)
	}
}

func decodeInteger(raw string) (any, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func decodeJSON(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}
