// Package jsonchunk reads serialization chunks in their JSON wire format.
//
// The reader decodes and shape-checks chunks: every node needs an id and a
// classifier, every property, containment and reference entry needs its
// meta-pointer. Format versions and schema conformance are left to the
// deserializer.
package jsonchunk
