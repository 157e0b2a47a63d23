package domain

// ClassifierKind tags the closed set of classifier variants.
type ClassifierKind string

// Classifier kinds.
const (
	ClassifierConcept       ClassifierKind = "concept"
	ClassifierInterface     ClassifierKind = "interface"
	ClassifierEnumeration   ClassifierKind = "enumeration"
	ClassifierPrimitiveType ClassifierKind = "primitive"
)

// IsValid returns true if the kind is recognised.
func (k ClassifierKind) IsValid() bool {
	switch k {
	case ClassifierConcept, ClassifierInterface, ClassifierEnumeration, ClassifierPrimitiveType:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ClassifierKind) String() string {
	return string(k)
}

// FeatureKind tags the closed set of feature variants.
type FeatureKind string

// Feature kinds.
const (
	FeatureProperty    FeatureKind = "property"
	FeatureContainment FeatureKind = "containment"
	FeatureReference   FeatureKind = "reference"
)

// IsValid returns true if the kind is recognised.
func (k FeatureKind) IsValid() bool {
	switch k {
	case FeatureProperty, FeatureContainment, FeatureReference:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k FeatureKind) String() string {
	return string(k)
}

// Feature is a typed slot declared on a concept or interface.
type Feature struct {
	Kind FeatureKind `json:"kind" yaml:"kind" validate:"required"`
	Key  string      `json:"key" yaml:"key" validate:"required"`
	Name string      `json:"name" yaml:"name"`

	// Type points at a primitive type or enumeration for properties, and at
	// a concept or interface for links.
	Type MetaPointer `json:"type" yaml:"type" validate:"required"`

	// Multiple marks a multi-valued link. Ignored for properties.
	Multiple bool `json:"multiple" yaml:"multiple"`
	Optional bool `json:"optional" yaml:"optional"`
}

// DisplayName returns the name, falling back to the key.
func (f *Feature) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Key
}

// IsLink returns true for containments and references.
func (f *Feature) IsLink() bool {
	return f.Kind == FeatureContainment || f.Kind == FeatureReference
}

// EnumerationLiteral is one literal of an enumeration.
type EnumerationLiteral struct {
	Key  string `json:"key" yaml:"key" validate:"required"`
	Name string `json:"name" yaml:"name"`
}

// Classifier is a schema-level type definition.
//
// Which fields are meaningful depends on Kind:
//
//   - Concept: Abstract, Partition, Extends (single concept), Implements, Features
//   - Interface: Implements (the extended interfaces), Features
//   - Enumeration: Literals
//   - PrimitiveType: none
type Classifier struct {
	Kind ClassifierKind `json:"kind" yaml:"kind" validate:"required"`
	Key  string         `json:"key" yaml:"key" validate:"required"`
	Name string         `json:"name" yaml:"name"`

	// Language is filled in from the owning language when it is loaded or
	// indexed.
	Language UsedLanguage `json:"-" yaml:"-" validate:"-"`

	Abstract   bool                 `json:"abstract" yaml:"abstract"`
	Partition  bool                 `json:"partition" yaml:"partition"`
	Extends    *MetaPointer         `json:"extends,omitempty" yaml:"extends,omitempty"`
	Implements []MetaPointer        `json:"implements,omitempty" yaml:"implements,omitempty" validate:"dive"`
	Features   []Feature            `json:"features,omitempty" yaml:"features,omitempty" validate:"dive"`
	Literals   []EnumerationLiteral `json:"literals,omitempty" yaml:"literals,omitempty" validate:"dive"`
}

// Pointer returns the meta-pointer that addresses this classifier.
func (c *Classifier) Pointer() MetaPointer {
	return MetaPointer{Language: c.Language.Key, Version: c.Language.Version, Key: c.Key}
}

// DisplayName returns the name, falling back to the key.
func (c *Classifier) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Key
}

// Supertypes returns the pointers of the direct supertypes in declaration
// order: the extended concept first, then implemented interfaces.
func (c *Classifier) Supertypes() []MetaPointer {
	var supers []MetaPointer
	if c.Extends != nil {
		supers = append(supers, *c.Extends)
	}
	return append(supers, c.Implements...)
}

// IsConcrete returns true for non-abstract concepts.
func (c *Classifier) IsConcrete() bool {
	return c.Kind == ClassifierConcept && !c.Abstract
}

// Language is a named, versioned set of classifiers.
type Language struct {
	Key          string         `json:"key" yaml:"key" validate:"required"`
	Version      string         `json:"version" yaml:"version" validate:"required"`
	Name         string         `json:"name" yaml:"name"`
	Dependencies []UsedLanguage `json:"dependencies,omitempty" yaml:"dependencies,omitempty" validate:"dive"`
	Classifiers  []Classifier   `json:"classifiers" yaml:"classifiers" validate:"dive"`
}

// Ref returns the key/version pair identifying the language.
func (l *Language) Ref() UsedLanguage {
	return UsedLanguage{Key: l.Key, Version: l.Version}
}

// Pointer returns a meta-pointer for a key within this language.
func (l *Language) Pointer(key string) MetaPointer {
	return MetaPointer{Language: l.Key, Version: l.Version, Key: key}
}

// Node is a runtime node produced by a NodeFactory. The deserializer only
// relies on its id; everything else belongs to the factory.
type Node interface {
	ID() string
}
