package services

import (
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

const (
	testLang    = "library"
	testVersion = "1"
)

func ptr(key string) domain.MetaPointer {
	return domain.MetaPointer{Language: testLang, Version: testVersion, Key: key}
}

func strPtr(s string) *string { return &s }

var (
	stringType  = domain.BuiltinPointer(domain.BuiltinString)
	booleanType = domain.BuiltinPointer(domain.BuiltinBoolean)
	integerType = domain.BuiltinPointer(domain.BuiltinInteger)
)

// testLanguage is a small language exercising every feature kind:
//
//	concept Cls       { members: Member[*] (containment), lead: Member (containment) }
//	concept Member    { name: String, age: Integer, active: Boolean, kind: Kind,
//	                    best: Member (reference), friends: Member[*] (reference) }
//	abstract concept Base implements INamed { tag: String }
//	concept Special extends Base { name: String }
//	interface INamed  { name: String }
//	enumeration Kind  { kind-a, kind-b, kind-c }
func testLanguage() domain.Language {
	base := ptr("Base")
	return domain.Language{
		Key:     testLang,
		Version: testVersion,
		Name:    "Library",
		Classifiers: []domain.Classifier{
			{
				Kind: domain.ClassifierConcept, Key: "Cls", Name: "Cls",
				Features: []domain.Feature{
					{Kind: domain.FeatureContainment, Key: "members", Name: "members", Type: ptr("Member"), Multiple: true},
					{Kind: domain.FeatureContainment, Key: "lead", Name: "lead", Type: ptr("Member")},
				},
			},
			{
				Kind: domain.ClassifierConcept, Key: "Member", Name: "Member",
				Features: []domain.Feature{
					{Kind: domain.FeatureProperty, Key: "name", Name: "name", Type: stringType},
					{Kind: domain.FeatureProperty, Key: "age", Name: "age", Type: integerType},
					{Kind: domain.FeatureProperty, Key: "active", Name: "active", Type: booleanType},
					{Kind: domain.FeatureProperty, Key: "kind", Name: "kind", Type: ptr("Kind")},
					{Kind: domain.FeatureReference, Key: "best", Name: "best", Type: ptr("Member")},
					{Kind: domain.FeatureReference, Key: "friends", Name: "friends", Type: ptr("Member"), Multiple: true},
				},
			},
			{
				Kind: domain.ClassifierConcept, Key: "Base", Name: "Base", Abstract: true,
				Implements: []domain.MetaPointer{ptr("INamed")},
				Features: []domain.Feature{
					{Kind: domain.FeatureProperty, Key: "tag", Name: "tag", Type: stringType},
				},
			},
			{
				Kind: domain.ClassifierConcept, Key: "Special", Name: "Special",
				Extends: &base,
				Features: []domain.Feature{
					{Kind: domain.FeatureProperty, Key: "name", Name: "name", Type: stringType},
				},
			},
			{
				Kind: domain.ClassifierInterface, Key: "INamed", Name: "INamed",
				Features: []domain.Feature{
					{Kind: domain.FeatureProperty, Key: "name", Name: "name", Type: stringType},
				},
			},
			{
				Kind: domain.ClassifierEnumeration, Key: "Kind", Name: "Kind",
				Literals: []domain.EnumerationLiteral{
					{Key: "kind-a", Name: "A"},
					{Key: "kind-b", Name: "B"},
					{Key: "kind-c", Name: "C"},
				},
			},
		},
	}
}

func prop(key, value string) domain.SerializedProperty {
	return domain.SerializedProperty{Property: ptr(key), Value: strPtr(value)}
}

func children(key string, ids ...string) domain.SerializedContainment {
	return domain.SerializedContainment{Containment: ptr(key), Children: ids}
}

func refs(key string, ids ...string) domain.SerializedReference {
	targets := make([]domain.SerializedReferenceTarget, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, domain.SerializedReferenceTarget{Reference: strPtr(id), ResolveInfo: strPtr("hint-" + id)})
	}
	return domain.SerializedReference{Reference: ptr(key), Targets: targets}
}

func node(id, classifier string, parent string) domain.SerializedNode {
	n := domain.SerializedNode{ID: id, Classifier: ptr(classifier)}
	if parent != "" {
		n.Parent = strPtr(parent)
	}
	return n
}

func chunkOf(nodes ...domain.SerializedNode) *domain.Chunk {
	return &domain.Chunk{
		SerializationFormatVersion: domain.CurrentSerializationFormatVersion,
		Languages:                  []domain.UsedLanguage{{Key: testLang, Version: testVersion}},
		Nodes:                      nodes,
	}
}
