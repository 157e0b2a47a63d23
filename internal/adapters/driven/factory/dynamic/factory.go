package dynamic

import (
	"fmt"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.NodeFactory = (*Factory)(nil)

// Factory builds dynamic Nodes. A Factory keeps no state between calls and
// may be shared.
type Factory struct{}

// NewFactory creates a new dynamic node factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateNode constructs a Node with its initial property values.
func (f *Factory) CreateNode(parent domain.Node, classifier *domain.Classifier, id string, properties map[string]any) (domain.Node, error) {
	var p *Node
	if parent != nil {
		dp, ok := parent.(*Node)
		if !ok {
			return nil, fmt.Errorf("%w: parent %q is a %T, not a dynamic node", domain.ErrInvalidInput, parent.ID(), parent)
		}
		p = dp
	}

	n := newNode(id, p, classifier)
	for k, v := range properties {
		n.properties[k] = v
	}
	return n, nil
}

// SetFeatureValue installs a property value, a child or a reference target.
// Single-valued links are replaced, multi-valued links are appended to.
func (f *Factory) SetFeatureValue(node domain.Node, feature *domain.Feature, value any) error {
	n, ok := node.(*Node)
	if !ok {
		return fmt.Errorf("%w: node %q is a %T, not a dynamic node", domain.ErrInvalidInput, node.ID(), node)
	}

	switch feature.Kind {
	case domain.FeatureProperty:
		n.properties[feature.Key] = value
	case domain.FeatureContainment:
		child, ok := value.(*Node)
		if !ok {
			return fmt.Errorf("%w: containment %q needs a dynamic node, got %T", domain.ErrInvalidInput, feature.DisplayName(), value)
		}
		if feature.Multiple {
			n.containments[feature.Key] = append(n.containments[feature.Key], child)
		} else {
			n.containments[feature.Key] = []*Node{child}
		}
	case domain.FeatureReference:
		target, ok := value.(domain.Node)
		if !ok {
			return fmt.Errorf("%w: reference %q needs a node, got %T", domain.ErrInvalidInput, feature.DisplayName(), value)
		}
		if feature.Multiple {
			n.references[feature.Key] = append(n.references[feature.Key], target)
		} else {
			n.references[feature.Key] = []domain.Node{target}
		}
	default:
		return fmt.Errorf("%w: feature kind %q", domain.ErrUnsupportedType, feature.Kind)
	}
	return nil
}

// EncodeEnumerationLiteral represents a literal by its key.
func (f *Factory) EncodeEnumerationLiteral(literal *domain.EnumerationLiteral) any {
	return literal.Key
}
