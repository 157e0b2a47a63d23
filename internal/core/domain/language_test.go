package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierKind_IsValid(t *testing.T) {
	for _, k := range []ClassifierKind{ClassifierConcept, ClassifierInterface, ClassifierEnumeration, ClassifierPrimitiveType} {
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, ClassifierKind("annotation").IsValid())
	assert.False(t, ClassifierKind("").IsValid())
}

func TestFeatureKind_IsValid(t *testing.T) {
	for _, k := range []FeatureKind{FeatureProperty, FeatureContainment, FeatureReference} {
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, FeatureKind("child").IsValid())
}

func TestClassifier_Supertypes(t *testing.T) {
	base := MetaPointer{Language: "l", Version: "1", Key: "Base"}
	named := MetaPointer{Language: "l", Version: "1", Key: "INamed"}
	tagged := MetaPointer{Language: "l", Version: "1", Key: "ITagged"}

	c := Classifier{Kind: ClassifierConcept, Key: "Book", Extends: &base, Implements: []MetaPointer{named, tagged}}

	assert.Equal(t, []MetaPointer{base, named, tagged}, c.Supertypes())
	assert.Empty(t, (&Classifier{Kind: ClassifierConcept}).Supertypes())
}

func TestClassifier_PointerAndNames(t *testing.T) {
	lang := Language{Key: "library", Version: "2"}
	c := Classifier{Kind: ClassifierConcept, Key: "library-Book", Language: lang.Ref()}

	assert.Equal(t, lang.Pointer("library-Book"), c.Pointer())
	assert.Equal(t, "library-Book", c.DisplayName())

	c.Name = "Book"
	assert.Equal(t, "Book", c.DisplayName())
}

func TestClassifier_IsConcrete(t *testing.T) {
	assert.True(t, (&Classifier{Kind: ClassifierConcept}).IsConcrete())
	assert.False(t, (&Classifier{Kind: ClassifierConcept, Abstract: true}).IsConcrete())
	assert.False(t, (&Classifier{Kind: ClassifierInterface}).IsConcrete())
}

func TestFeature_Helpers(t *testing.T) {
	f := Feature{Kind: FeatureReference, Key: "ref-key"}
	assert.True(t, f.IsLink())
	assert.Equal(t, "ref-key", f.DisplayName())

	f.Name = "target"
	assert.Equal(t, "target", f.DisplayName())
	assert.False(t, (&Feature{Kind: FeatureProperty}).IsLink())
}

func TestBuiltinsLanguage(t *testing.T) {
	lang := BuiltinsLanguage()

	assert.Equal(t, BuiltinsLanguageKey, lang.Key)
	assert.Len(t, lang.Classifiers, 4)
	for _, c := range lang.Classifiers {
		assert.Equal(t, ClassifierPrimitiveType, c.Kind)
	}
	assert.Equal(t, BuiltinString, BuiltinPointer(BuiltinString).Key)
}
