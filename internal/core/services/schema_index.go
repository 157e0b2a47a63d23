package services

import (
	"fmt"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// SchemaIndex resolves meta-pointers to classifiers and holds the flattened
// feature set of every concept and interface.
//
// An index is built once per set of languages and never modified afterwards,
// so it may be shared by any number of concurrent deserializer runs.
type SchemaIndex struct {
	languages   []domain.Language
	classifiers map[domain.MetaPointer]*domain.Classifier
	ordered     []*domain.Classifier
	flattened   map[*domain.Classifier][]*domain.Feature
}

// NewSchemaIndex indexes the given languages together with the built-in
// primitive types. The languages are copied; later changes to the arguments
// don't affect the index.
func NewSchemaIndex(languages ...domain.Language) (*SchemaIndex, error) {
	all := make([]domain.Language, 0, len(languages)+1)
	all = append(all, copyLanguage(domain.BuiltinsLanguage()))
	for i := range languages {
		if languages[i].Key == domain.BuiltinsLanguageKey && languages[i].Version == domain.BuiltinsLanguageVersion {
			continue
		}
		all = append(all, copyLanguage(languages[i]))
	}

	idx := &SchemaIndex{
		languages:   all,
		classifiers: make(map[domain.MetaPointer]*domain.Classifier),
		flattened:   make(map[*domain.Classifier][]*domain.Feature),
	}

	for li := range idx.languages {
		lang := &idx.languages[li]
		for ci := range lang.Classifiers {
			c := &lang.Classifiers[ci]
			c.Language = lang.Ref()
			ptr := c.Pointer()
			if _, exists := idx.classifiers[ptr]; exists {
				return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateClassifier, ptr)
			}
			idx.classifiers[ptr] = c
			idx.ordered = append(idx.ordered, c)
		}
	}

	for _, c := range idx.ordered {
		for _, super := range c.Supertypes() {
			if _, ok := idx.classifiers[super]; !ok {
				return nil, fmt.Errorf("%w: %s of %s", domain.ErrUnresolvedSupertype, super, c.Pointer())
			}
		}
	}

	for _, c := range idx.ordered {
		if c.Kind == domain.ClassifierConcept || c.Kind == domain.ClassifierInterface {
			idx.flattened[c] = idx.flatten(c, map[*domain.Classifier]bool{})
		}
	}

	return idx, nil
}

// copyLanguage deep-copies the classifier slice so the index owns its
// classifiers.
func copyLanguage(lang domain.Language) domain.Language {
	cp := lang
	cp.Classifiers = make([]domain.Classifier, len(lang.Classifiers))
	copy(cp.Classifiers, lang.Classifiers)
	for i := range cp.Classifiers {
		c := &cp.Classifiers[i]
		c.Features = append([]domain.Feature(nil), c.Features...)
		c.Literals = append([]domain.EnumerationLiteral(nil), c.Literals...)
		c.Implements = append([]domain.MetaPointer(nil), c.Implements...)
	}
	return cp
}

// flatten collects own features followed by those of every supertype in
// declaration order, keeping the first feature seen for each key. A
// classifier already on the current path is not expanded again.
func (idx *SchemaIndex) flatten(c *domain.Classifier, onPath map[*domain.Classifier]bool) []*domain.Feature {
	if onPath[c] {
		return nil
	}
	onPath[c] = true
	defer delete(onPath, c)

	var features []*domain.Feature
	seen := make(map[string]bool)
	add := func(f *domain.Feature) {
		if seen[f.Key] {
			return
		}
		seen[f.Key] = true
		features = append(features, f)
	}

	for i := range c.Features {
		add(&c.Features[i])
	}
	for _, ptr := range c.Supertypes() {
		super := idx.classifiers[ptr]
		inherited, done := idx.flattened[super]
		if !done {
			inherited = idx.flatten(super, onPath)
		}
		for _, f := range inherited {
			add(f)
		}
	}
	return features
}

// ResolveClassifier returns the classifier addressed by ptr.
func (idx *SchemaIndex) ResolveClassifier(ptr domain.MetaPointer) (*domain.Classifier, bool) {
	c, ok := idx.classifiers[ptr]
	return c, ok
}

// FlattenedFeatures returns own and inherited features of a concept or
// interface, deduplicated by key. The returned slice must not be modified.
// Classifiers that were not indexed, and enumerations and primitive types,
// have no features.
func (idx *SchemaIndex) FlattenedFeatures(c *domain.Classifier) []*domain.Feature {
	if c == nil {
		return nil
	}
	if features, ok := idx.flattened[c]; ok {
		return features
	}
	if indexed, ok := idx.classifiers[c.Pointer()]; ok {
		return idx.flattened[indexed]
	}
	return nil
}

// Concepts returns all concepts in language and declaration order.
func (idx *SchemaIndex) Concepts() []*domain.Classifier {
	var concepts []*domain.Classifier
	for _, c := range idx.ordered {
		if c.Kind == domain.ClassifierConcept {
			concepts = append(concepts, c)
		}
	}
	return concepts
}

// Languages returns the indexed languages, built-ins first.
func (idx *SchemaIndex) Languages() []domain.Language {
	return idx.languages
}

// Len returns the number of indexed classifiers.
func (idx *SchemaIndex) Len() int {
	return len(idx.ordered)
}
