// Package domain defines the core types of the lionweb tooling.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk, SerializedNode: the flat serialized form of a model
//   - MetaPointer: the three-part key addressing classifiers and features
//   - Language, Classifier, Feature: the schema a chunk conforms to
//   - Node: the runtime node boundary implemented by node factories
//   - ChunkMetrics: measurements of how a chunk uses its languages
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
