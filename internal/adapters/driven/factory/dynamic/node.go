package dynamic

import (
	"sort"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// Ensure Node implements the interface.
var _ domain.Node = (*Node)(nil)

// Node is a runtime node whose feature values are stored by feature key.
type Node struct {
	id           string
	parent       *Node
	classifier   *domain.Classifier
	properties   map[string]any
	containments map[string][]*Node
	references   map[string][]domain.Node
}

func newNode(id string, parent *Node, classifier *domain.Classifier) *Node {
	return &Node{
		id:           id,
		parent:       parent,
		classifier:   classifier,
		properties:   make(map[string]any),
		containments: make(map[string][]*Node),
		references:   make(map[string][]domain.Node),
	}
}

// ID returns the serialized id.
func (n *Node) ID() string {
	return n.id
}

// Parent returns the containing node, nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Classifier returns the concept this node instantiates.
func (n *Node) Classifier() *domain.Classifier {
	return n.classifier
}

// Property returns the value of a property by key.
func (n *Node) Property(key string) (any, bool) {
	v, ok := n.properties[key]
	return v, ok
}

// PropertyKeys returns the keys of set properties in sorted order.
func (n *Node) PropertyKeys() []string {
	return sortedKeys(n.properties)
}

// Children returns the nodes held in a containment, in installation order.
func (n *Node) Children(featureKey string) []*Node {
	return n.containments[featureKey]
}

// Child returns the first node held in a containment, or nil.
func (n *Node) Child(featureKey string) *Node {
	children := n.containments[featureKey]
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// ContainmentKeys returns the keys of containments holding children, sorted.
func (n *Node) ContainmentKeys() []string {
	return sortedKeys(n.containments)
}

// References returns the targets of a reference, in installation order.
// Targets may be nodes of another factory when they came from dependent
// chunks.
func (n *Node) References(featureKey string) []domain.Node {
	return n.references[featureKey]
}

// Reference returns the first target of a reference, or nil.
func (n *Node) Reference(featureKey string) domain.Node {
	targets := n.references[featureKey]
	if len(targets) == 0 {
		return nil
	}
	return targets[0]
}

// ReferenceKeys returns the keys of references holding targets, sorted.
func (n *Node) ReferenceKeys() []string {
	return sortedKeys(n.references)
}

// Walk visits n and its containment descendants depth-first, children in
// sorted containment key order. Returning false from fn skips the subtree.
// A node reached twice (malformed input or a containment cycle) is visited
// once.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.WalkFeatures(func(node *Node, _ string, depth int) bool {
		return fn(node, depth)
	})
}

// WalkFeatures is Walk that also passes the containment key a node was
// reached through, empty for n itself.
func (n *Node) WalkFeatures(fn func(node *Node, featureKey string, depth int) bool) {
	n.walk(make(map[*Node]bool), fn)
}

func (n *Node) walk(visited map[*Node]bool, fn func(node *Node, featureKey string, depth int) bool) {
	var walk func(node *Node, featureKey string, depth int)
	walk = func(node *Node, featureKey string, depth int) {
		if visited[node] {
			return
		}
		visited[node] = true
		if !fn(node, featureKey, depth) {
			return
		}
		for _, key := range node.ContainmentKeys() {
			for _, child := range node.containments[key] {
				walk(child, key, depth+1)
			}
		}
	}
	walk(n, "", 0)
}

// Count returns the number of nodes in the containment subtree of n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Flatten returns the roots and every node they contain, depth first.
// Roots built by another factory are kept as they are. Each node appears
// once even when subtrees overlap.
func Flatten(roots []domain.Node) []domain.Node {
	visited := make(map[*Node]bool)
	var nodes []domain.Node
	for _, root := range roots {
		dn, ok := root.(*Node)
		if !ok {
			nodes = append(nodes, root)
			continue
		}
		dn.walk(visited, func(n *Node, _ string, _ int) bool {
			nodes = append(nodes, n)
			return true
		})
	}
	return nodes
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
