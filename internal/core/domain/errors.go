package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent data-correctness failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown file format or policy value.
	ErrUnsupportedType = errors.New("unsupported type")

	// Deserialization Errors.

	// ErrVersionMismatch indicates the chunk's serialization format version
	// differs from CurrentSerializationFormatVersion.
	ErrVersionMismatch = errors.New("serialization format version mismatch")

	// ErrNoRootNodes indicates every serialized node declares a parent.
	ErrNoRootNodes = errors.New("no root nodes")

	// ErrDuplicateNodeID indicates two serialized nodes share an id.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrUnknownClassifier indicates a classifier pointer does not resolve
	// to a concept of the supplied languages.
	ErrUnknownClassifier = errors.New("unknown classifier")

	// ErrMissingChild indicates a containment lists a child id that is not
	// part of the chunk.
	ErrMissingChild = errors.New("missing child node")

	// ErrUnresolvedReference indicates a reference target is neither in the
	// chunk nor among the dependent nodes.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrScalarDecode indicates a property value could not be decoded for
	// its primitive type.
	ErrScalarDecode = errors.New("scalar decode failure")

	// Schema Errors.

	// ErrDuplicateClassifier indicates two classifiers share a meta-pointer.
	ErrDuplicateClassifier = errors.New("duplicate classifier")

	// ErrUnresolvedSupertype indicates a supertype pointer does not resolve.
	ErrUnresolvedSupertype = errors.New("unresolved supertype")
)

// VersionMismatchError reports the version found in a chunk.
type VersionMismatchError struct {
	Expected string
	Actual   string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("can't deserialize from serialization format version %q, only %q is supported", e.Actual, e.Expected)
}

func (e *VersionMismatchError) Unwrap() error { return ErrVersionMismatch }

// DuplicateNodeIDError names the id that occurs more than once.
type DuplicateNodeIDError struct {
	ID string
}

func (e *DuplicateNodeIDError) Error() string {
	return fmt.Sprintf("node id %q occurs more than once in the chunk", e.ID)
}

func (e *DuplicateNodeIDError) Unwrap() error { return ErrDuplicateNodeID }

// UnknownClassifierError names the node and the classifier it points at.
type UnknownClassifierError struct {
	NodeID     string
	Classifier MetaPointer
	Reason     string
}

func (e *UnknownClassifierError) Error() string {
	msg := fmt.Sprintf("can't deserialize node %q having classifier %s", e.NodeID, e.Classifier)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnknownClassifierError) Unwrap() error { return ErrUnknownClassifier }

// MissingChildError names a containment child id absent from the chunk.
type MissingChildError struct {
	ParentID string
	Feature  string
	ChildID  string
}

func (e *MissingChildError) Error() string {
	return fmt.Sprintf("child %q in containment %q of node %q is not in the chunk", e.ChildID, e.Feature, e.ParentID)
}

func (e *MissingChildError) Unwrap() error { return ErrMissingChild }

// UnresolvedReferenceError names the owning node, the reference feature and
// the missing target id.
type UnresolvedReferenceError struct {
	NodeID   string
	Feature  string
	TargetID string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("couldn't find the target with id %q of a %q reference on the node with id %q", e.TargetID, e.Feature, e.NodeID)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// ScalarDecodeError names the property and raw value that failed to decode.
type ScalarDecodeError struct {
	PropertyKey string
	RawValue    string
	Err         error
}

func (e *ScalarDecodeError) Error() string {
	msg := fmt.Sprintf("can't decode value %q of property %q", e.RawValue, e.PropertyKey)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ScalarDecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrScalarDecode}
	}
	return []error{ErrScalarDecode, e.Err}
}
