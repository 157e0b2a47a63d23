package domain

import "fmt"

// CurrentSerializationFormatVersion is the only serialization format version
// the deserializer accepts. No compatibility ranges are honoured.
const CurrentSerializationFormatVersion = "2023.1"

// MetaPointer addresses a classifier or feature of a language without relying
// on in-process identity. All three components take part in equality, so a
// re-versioned classifier is a different classifier.
type MetaPointer struct {
	// Language is the key of the owning language.
	Language string `json:"language" yaml:"language" validate:"required"`

	// Version is the version of the owning language.
	Version string `json:"version" yaml:"version" validate:"required"`

	// Key is the classifier or feature key within the language.
	Key string `json:"key" yaml:"key" validate:"required"`
}

// String returns the pointer as "language@version:key".
func (p MetaPointer) String() string {
	return fmt.Sprintf("%s@%s:%s", p.Language, p.Version, p.Key)
}

// IsZero returns true if no component is set.
func (p MetaPointer) IsZero() bool {
	return p == MetaPointer{}
}

// SerializedProperty is one property entry of a serialized node.
// A nil Value means the property is absent.
type SerializedProperty struct {
	Property MetaPointer `json:"property" validate:"required"`
	Value    *string     `json:"value"`
}

// SerializedContainment lists the ids of the children held in one containment.
type SerializedContainment struct {
	Containment MetaPointer `json:"containment" validate:"required"`
	Children    []string    `json:"children"`
}

// SerializedReferenceTarget is one target of a serialized reference.
// ResolveInfo is a display hint only and never used for resolution.
type SerializedReferenceTarget struct {
	ResolveInfo *string `json:"resolveInfo"`
	Reference   *string `json:"reference"`
}

// SerializedReference lists the targets of one reference feature.
type SerializedReference struct {
	Reference MetaPointer                 `json:"reference" validate:"required"`
	Targets   []SerializedReferenceTarget `json:"targets"`
}

// SerializedNode is the flat, read-only form of one node in a chunk.
type SerializedNode struct {
	// ID is unique within the chunk.
	ID string `json:"id" validate:"required"`

	// Classifier points at the concept the node instantiates.
	Classifier MetaPointer `json:"classifier" validate:"required"`

	Properties   []SerializedProperty    `json:"properties" validate:"dive"`
	Containments []SerializedContainment `json:"containments" validate:"dive"`
	References   []SerializedReference   `json:"references" validate:"dive"`
	Annotations  []string                `json:"annotations"`

	// Parent is the id of the containing node, nil for a root.
	Parent *string `json:"parent"`
}

// IsRoot returns true if the node declares no parent.
func (n *SerializedNode) IsRoot() bool {
	return n.Parent == nil
}

// UsedLanguage declares a language a chunk claims conformance to.
type UsedLanguage struct {
	Key     string `json:"key" yaml:"key" validate:"required"`
	Version string `json:"version" yaml:"version" validate:"required"`
}

// String returns the language as "key@version".
func (l UsedLanguage) String() string {
	return l.Key + "@" + l.Version
}

// Chunk is the unit of input to one deserializer invocation.
type Chunk struct {
	SerializationFormatVersion string           `json:"serializationFormatVersion"`
	Languages                  []UsedLanguage   `json:"languages" validate:"dive"`
	Nodes                      []SerializedNode `json:"nodes" validate:"dive"`
}

// RootNodes returns the nodes without a parent, in chunk order.
func (c *Chunk) RootNodes() []*SerializedNode {
	var roots []*SerializedNode
	for i := range c.Nodes {
		if c.Nodes[i].IsRoot() {
			roots = append(roots, &c.Nodes[i])
		}
	}
	return roots
}
