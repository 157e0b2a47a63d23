package dynamic

import (
	"sync"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.NodeFactory = (*Recorder)(nil)

// Recorder wraps a NodeFactory and counts the calls made to it.
type Recorder struct {
	inner driven.NodeFactory

	mu      sync.Mutex
	created []string
	sets    int
	encodes int
}

// NewRecorder wraps inner. A nil inner records calls to a new Factory.
func NewRecorder(inner driven.NodeFactory) *Recorder {
	if inner == nil {
		inner = NewFactory()
	}
	return &Recorder{inner: inner}
}

// CreateNode records the id and delegates.
func (r *Recorder) CreateNode(parent domain.Node, classifier *domain.Classifier, id string, properties map[string]any) (domain.Node, error) {
	r.mu.Lock()
	r.created = append(r.created, id)
	r.mu.Unlock()
	return r.inner.CreateNode(parent, classifier, id, properties)
}

// SetFeatureValue counts and delegates.
func (r *Recorder) SetFeatureValue(node domain.Node, feature *domain.Feature, value any) error {
	r.mu.Lock()
	r.sets++
	r.mu.Unlock()
	return r.inner.SetFeatureValue(node, feature, value)
}

// EncodeEnumerationLiteral counts and delegates.
func (r *Recorder) EncodeEnumerationLiteral(literal *domain.EnumerationLiteral) any {
	r.mu.Lock()
	r.encodes++
	r.mu.Unlock()
	return r.inner.EncodeEnumerationLiteral(literal)
}

// CreatedIDs returns the ids passed to CreateNode, in call order.
func (r *Recorder) CreatedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.created...)
}

// Calls returns the total number of calls of any kind.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created) + r.sets + r.encodes
}

// SetCalls returns the number of SetFeatureValue calls.
func (r *Recorder) SetCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets
}
