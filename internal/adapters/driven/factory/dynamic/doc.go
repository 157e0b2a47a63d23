// Package dynamic provides a schema-agnostic implementation of the
// driven.NodeFactory port.
//
// Nodes built by this factory keep their feature values in maps keyed by
// feature key, so any language can be deserialized without generated code.
// The CLI uses it to reconstruct and print chunk contents.
package dynamic
