package services

import (
	"fmt"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lionweb-cli/internal/logger"
)

// Deserializer reconstructs runtime node graphs from serialization chunks.
//
// A Deserializer holds no per-run state: every call to Run builds its own
// node arena and pending-link queue, so one Deserializer may serve concurrent
// runs as long as each run gets its own NodeFactory.
type Deserializer struct {
	index         *SchemaIndex
	codec         *ValueCodec
	scalarFailure domain.ScalarFailurePolicy
}

// DeserializerOption configures a Deserializer.
type DeserializerOption func(*Deserializer)

// WithScalarFailurePolicy sets what happens to undecodable property values.
// Invalid policies are ignored.
func WithScalarFailurePolicy(policy domain.ScalarFailurePolicy) DeserializerOption {
	return func(d *Deserializer) {
		if policy.IsValid() {
			d.scalarFailure = policy
		}
	}
}

// NewDeserializer creates a deserializer over a schema index. A nil codec
// means the built-in primitive decoders.
func NewDeserializer(index *SchemaIndex, codec *ValueCodec, opts ...DeserializerOption) *Deserializer {
	if codec == nil {
		codec = NewValueCodec()
	}
	d := &Deserializer{
		index:         index,
		codec:         codec,
		scalarFailure: domain.ScalarFailureFatal,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeserializeChunk indexes languages and deserializes chunk in one call.
// Prefer building a SchemaIndex once when deserializing many chunks.
func DeserializeChunk(chunk *domain.Chunk, languages []domain.Language, factory driven.NodeFactory, dependents []domain.Node) ([]domain.Node, error) {
	index, err := NewSchemaIndex(languages...)
	if err != nil {
		return nil, fmt.Errorf("index languages: %w", err)
	}
	return NewDeserializer(index, nil).Deserialize(chunk, factory, dependents)
}

// Deserialize returns the root nodes of chunk, in chunk order.
// See Run for the failure semantics.
func (d *Deserializer) Deserialize(chunk *domain.Chunk, factory driven.NodeFactory, dependents []domain.Node) ([]domain.Node, error) {
	result, err := d.Run(chunk, factory, dependents)
	if err != nil {
		return nil, err
	}
	return result.Roots, nil
}

// Run deserializes chunk and reports statistics.
//
// Every failure is returned as *domain.DeserializeError and no nodes are
// returned with it. Failures in the validating phase happen before any
// NodeFactory call; later failures may leave factory side effects behind,
// which DeserializeError.SideEffects reports.
func (d *Deserializer) Run(chunk *domain.Chunk, factory driven.NodeFactory, dependents []domain.Node) (*domain.DeserializeResult, error) {
	r := &run{
		d:       d,
		factory: factory,
		phase:   domain.PhaseValidating,
		arena:   newNodeArena(),
	}

	roots, err := r.validate(chunk)
	if err != nil {
		return nil, r.fail(err)
	}

	logger.Debug("Deserializing %d nodes (%d roots)", len(chunk.Nodes), len(roots))

	r.phase = domain.PhaseInstantiating
	rootNodes := make([]domain.Node, 0, len(roots))
	for _, sn := range roots {
		node, err := r.instantiate(sn, nil)
		if err != nil {
			return nil, r.fail(err)
		}
		rootNodes = append(rootNodes, node)
	}

	if unreachable := len(r.serialized) - r.arena.len(); unreachable > 0 {
		logger.Warn("%d serialized nodes are not reachable from a root and were skipped", unreachable)
	}

	r.phase = domain.PhaseResolvingLinks
	if err := r.resolveLinks(dependents); err != nil {
		return nil, r.fail(err)
	}

	logger.Debug("Deserialized %d nodes, installed %d references", r.arena.len(), len(r.pending))

	return &domain.DeserializeResult{
		Roots: rootNodes,
		Stats: domain.DeserializeStats{
			Roots: len(rootNodes),
			Nodes: r.arena.len(),
			Links: len(r.pending),
		},
	}, nil
}

// pendingLink is a reference waiting for the whole tree to exist.
type pendingLink struct {
	owner    domain.Node
	ownerID  string
	feature  *domain.Feature
	targetID string
}

// nodeArena maps serialized ids to the one runtime node built for each.
type nodeArena struct {
	nodes map[string]domain.Node
}

func newNodeArena() *nodeArena {
	return &nodeArena{nodes: make(map[string]domain.Node)}
}

func (a *nodeArena) lookup(id string) (domain.Node, bool) {
	n, ok := a.nodes[id]
	return n, ok
}

func (a *nodeArena) store(id string, node domain.Node) {
	a.nodes[id] = node
}

func (a *nodeArena) len() int {
	return len(a.nodes)
}

// run is the state of one deserializer invocation.
type run struct {
	d           *Deserializer
	factory     driven.NodeFactory
	phase       domain.Phase
	sideEffects bool
	serialized  map[string]*domain.SerializedNode
	arena       *nodeArena
	pending     []pendingLink
}

func (r *run) fail(err error) error {
	return &domain.DeserializeError{Phase: r.phase, SideEffects: r.sideEffects, Err: err}
}

// validate checks the chunk without touching the factory and returns the
// serialized roots.
func (r *run) validate(chunk *domain.Chunk) ([]*domain.SerializedNode, error) {
	if chunk == nil {
		return nil, fmt.Errorf("%w: nil chunk", domain.ErrInvalidInput)
	}
	if chunk.SerializationFormatVersion != domain.CurrentSerializationFormatVersion {
		return nil, &domain.VersionMismatchError{
			Expected: domain.CurrentSerializationFormatVersion,
			Actual:   chunk.SerializationFormatVersion,
		}
	}

	r.serialized = make(map[string]*domain.SerializedNode, len(chunk.Nodes))
	for i := range chunk.Nodes {
		sn := &chunk.Nodes[i]
		if _, dup := r.serialized[sn.ID]; dup {
			return nil, &domain.DuplicateNodeIDError{ID: sn.ID}
		}
		r.serialized[sn.ID] = sn
	}

	roots := chunk.RootNodes()
	if len(roots) == 0 {
		return nil, fmt.Errorf("could not deserialize: %w", domain.ErrNoRootNodes)
	}
	return roots, nil
}

// instantiate builds the node for sn and its containment subtree. A node is
// only ever built once; later calls for the same id return the same node.
func (r *run) instantiate(sn *domain.SerializedNode, parent domain.Node) (domain.Node, error) {
	if node, ok := r.arena.lookup(sn.ID); ok {
		return node, nil
	}

	classifier, ok := r.d.index.ResolveClassifier(sn.Classifier)
	if !ok {
		return nil, &domain.UnknownClassifierError{NodeID: sn.ID, Classifier: sn.Classifier}
	}
	if classifier.Kind != domain.ClassifierConcept {
		return nil, &domain.UnknownClassifierError{
			NodeID:     sn.ID,
			Classifier: sn.Classifier,
			Reason:     fmt.Sprintf("%s is not a concept", classifier.Kind),
		}
	}

	features := r.d.index.FlattenedFeatures(classifier)
	declared := make(map[string]*domain.Feature, len(features))
	for _, f := range features {
		declared[f.Key] = f
	}

	properties, err := r.decodeProperties(sn, declared)
	if err != nil {
		return nil, err
	}

	node, err := r.factory.CreateNode(parent, classifier, sn.ID, properties)
	r.sideEffects = true
	if err != nil {
		return nil, fmt.Errorf("create node %q: %w", sn.ID, err)
	}
	r.arena.store(sn.ID, node)

	children := groupChildren(sn.Containments, declared, sn.ID)
	for _, f := range features {
		if f.Kind != domain.FeatureContainment {
			continue
		}
		ids, present := children[f.Key]
		if !present {
			continue
		}
		if !f.Multiple && len(ids) > 1 {
			logger.Debug("Node %q: single-valued containment %q lists %d children, keeping the first", sn.ID, f.DisplayName(), len(ids))
			ids = ids[:1]
		}
		for _, childID := range ids {
			childSN, ok := r.serialized[childID]
			if !ok {
				return nil, &domain.MissingChildError{ParentID: sn.ID, Feature: f.DisplayName(), ChildID: childID}
			}
			child, err := r.instantiate(childSN, node)
			if err != nil {
				return nil, err
			}
			if err := r.factory.SetFeatureValue(node, f, child); err != nil {
				return nil, fmt.Errorf("set containment %q on node %q: %w", f.DisplayName(), sn.ID, err)
			}
		}
	}

	targets := groupTargets(sn.References, declared, sn.ID)
	for _, f := range features {
		if f.Kind != domain.FeatureReference {
			continue
		}
		for _, targetID := range targets[f.Key] {
			r.pending = append(r.pending, pendingLink{owner: node, ownerID: sn.ID, feature: f, targetID: targetID})
		}
	}

	return node, nil
}

// decodeProperties decodes the serialized values of declared properties.
// Absent values and unmatched enumeration literals leave the property unset.
func (r *run) decodeProperties(sn *domain.SerializedNode, declared map[string]*domain.Feature) (map[string]any, error) {
	properties := make(map[string]any)
	seen := make(map[string]bool, len(sn.Properties))

	for i := range sn.Properties {
		sp := &sn.Properties[i]
		key := sp.Property.Key
		f, ok := declared[key]
		if !ok || f.Kind != domain.FeatureProperty {
			logger.Debug("Node %q: ignoring undeclared property %s", sn.ID, sp.Property)
			continue
		}
		if seen[key] || sp.Value == nil {
			continue
		}
		seen[key] = true

		typ, ok := r.d.index.ResolveClassifier(f.Type)
		if !ok {
			logger.Debug("Node %q: property %q has unresolved type %s", sn.ID, f.DisplayName(), f.Type)
			continue
		}

		switch typ.Kind {
		case domain.ClassifierPrimitiveType:
			value, err := r.d.codec.DecodeScalar(f, *sp.Value, typ)
			if err != nil {
				if r.d.scalarFailure == domain.ScalarFailureDrop {
					logger.Warn("Node %q: dropping property: %v", sn.ID, err)
					continue
				}
				return nil, fmt.Errorf("node %q: %w", sn.ID, err)
			}
			properties[key] = value
		case domain.ClassifierEnumeration:
			literal, ok := r.d.codec.ResolveEnumerationLiteral(*sp.Value, typ)
			if !ok {
				logger.Debug("Node %q: %q is not a literal of %s", sn.ID, *sp.Value, typ.DisplayName())
				continue
			}
			properties[key] = r.factory.EncodeEnumerationLiteral(literal)
		default:
			logger.Debug("Node %q: property %q is typed by %s %s", sn.ID, f.DisplayName(), typ.Kind, typ.DisplayName())
		}
	}
	return properties, nil
}

// groupChildren concatenates child ids per declared containment key.
func groupChildren(entries []domain.SerializedContainment, declared map[string]*domain.Feature, nodeID string) map[string][]string {
	grouped := make(map[string][]string, len(entries))
	for _, sc := range entries {
		key := sc.Containment.Key
		if f, ok := declared[key]; !ok || f.Kind != domain.FeatureContainment {
			logger.Debug("Node %q: ignoring undeclared containment %s", nodeID, sc.Containment)
			continue
		}
		grouped[key] = append(grouped[key], sc.Children...)
	}
	return grouped
}

// groupTargets concatenates target ids per declared reference key. Targets
// without an id carry only a resolve hint and are skipped.
func groupTargets(entries []domain.SerializedReference, declared map[string]*domain.Feature, nodeID string) map[string][]string {
	grouped := make(map[string][]string, len(entries))
	for _, ref := range entries {
		key := ref.Reference.Key
		if f, ok := declared[key]; !ok || f.Kind != domain.FeatureReference {
			logger.Debug("Node %q: ignoring undeclared reference %s", nodeID, ref.Reference)
			continue
		}
		for _, t := range ref.Targets {
			if t.Reference == nil {
				continue
			}
			grouped[key] = append(grouped[key], *t.Reference)
		}
	}
	return grouped
}

// resolveLinks installs every pending link in recording order, looking
// targets up in the arena first and in the dependent nodes second.
func (r *run) resolveLinks(dependents []domain.Node) error {
	if len(r.pending) == 0 {
		return nil
	}

	external := make(map[string]domain.Node, len(dependents))
	for _, n := range dependents {
		if n != nil {
			external[n.ID()] = n
		}
	}

	for _, link := range r.pending {
		target, ok := r.arena.lookup(link.targetID)
		if !ok {
			target, ok = external[link.targetID]
		}
		if !ok {
			return &domain.UnresolvedReferenceError{
				NodeID:   link.ownerID,
				Feature:  link.feature.DisplayName(),
				TargetID: link.targetID,
			}
		}
		if err := r.factory.SetFeatureValue(link.owner, link.feature, target); err != nil {
			return fmt.Errorf("set reference %q on node %q: %w", link.feature.DisplayName(), link.ownerID, err)
		}
	}
	return nil
}
