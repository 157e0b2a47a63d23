package driven

import "github.com/custodia-labs/lionweb-cli/internal/core/domain"

// NodeFactory creates and populates runtime nodes for the deserializer.
// It abstracts over whatever in-memory node representation the host uses;
// the deserializer never touches a runtime node except through it.
//
// The deserializer calls CreateNode exactly once per distinct serialized id
// in a run. Calls made before a later failure are not rolled back.
type NodeFactory interface {
	// CreateNode constructs the node with the given id. Parent is nil for
	// roots. Properties maps property keys to decoded values.
	CreateNode(parent domain.Node, classifier *domain.Classifier, id string, properties map[string]any) (domain.Node, error)

	// SetFeatureValue installs a value for a feature. For containments the
	// value is a child node, for references a resolved target node. Multi-valued
	// features receive one call per value, in serialized order.
	SetFeatureValue(node domain.Node, feature *domain.Feature, value any) error

	// EncodeEnumerationLiteral maps a literal to its runtime representation.
	EncodeEnumerationLiteral(literal *domain.EnumerationLiteral) any
}
