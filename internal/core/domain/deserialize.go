package domain

import "fmt"

// Phase identifies the stage of a deserializer run.
type Phase string

// Deserializer phases, in the order a run goes through them.
const (
	// PhaseValidating checks the chunk before any NodeFactory call.
	PhaseValidating Phase = "validating"

	// PhaseInstantiating builds nodes reachable from the roots.
	PhaseInstantiating Phase = "instantiating"

	// PhaseResolvingLinks installs deferred references.
	PhaseResolvingLinks Phase = "resolving-links"
)

// DeserializeError is the terminal failure of a deserializer run.
// SideEffects reports whether the NodeFactory had already been called when
// the failure was detected; callers needing all-or-nothing construction must
// discard whatever the factory produced in that case.
type DeserializeError struct {
	Phase       Phase
	SideEffects bool
	Err         error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("deserialize (%s): %v", e.Phase, e.Err)
}

func (e *DeserializeError) Unwrap() error { return e.Err }

// ScalarFailurePolicy decides what happens when a property value can't be
// decoded for its primitive type.
type ScalarFailurePolicy string

// Scalar failure policies.
const (
	// ScalarFailureFatal aborts the run.
	ScalarFailureFatal ScalarFailurePolicy = "fatal"

	// ScalarFailureDrop leaves the property unset.
	ScalarFailureDrop ScalarFailurePolicy = "drop"
)

// IsValid returns true if the policy is recognised.
func (p ScalarFailurePolicy) IsValid() bool {
	return p == ScalarFailureFatal || p == ScalarFailureDrop
}

// String returns the string representation.
func (p ScalarFailurePolicy) String() string {
	return string(p)
}

// DeserializeStats summarises a successful run.
type DeserializeStats struct {
	Roots int
	Nodes int
	Links int
}

// DeserializeResult is the outcome of a successful run.
type DeserializeResult struct {
	// Roots are the root nodes in chunk order.
	Roots []Node
	Stats DeserializeStats
}
