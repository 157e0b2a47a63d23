package language

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

const libraryYAML = `
key: library
version: "1"
name: Library
classifiers:
  - kind: concept
    key: Book
    name: Book
    implements:
      - {language: library, version: "1", key: INamed}
    features:
      - kind: property
        key: title
        name: title
        type: {language: LionCore-builtins, version: "2023.1", key: LionCore-builtins-String}
      - kind: reference
        key: author
        type: {language: library, version: "1", key: Writer}
        optional: true
  - kind: concept
    key: Writer
    abstract: true
  - kind: interface
    key: INamed
  - kind: enumeration
    key: Genre
    literals:
      - {key: genre-novel, name: Novel}
      - {key: genre-poem, name: Poem}
`

const libraryJSON = `[
  {"key": "a", "version": "1", "classifiers": [{"kind": "concept", "key": "A"}]},
  {"key": "b", "version": "2", "dependencies": [{"key": "a", "version": "1"}],
   "classifiers": [{"kind": "concept", "key": "B", "extends": {"language": "a", "version": "1", "key": "A"}}]}
]`

func newLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader(0)
	require.NoError(t, err)
	return l
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "library.yaml", libraryYAML)

	langs, err := newLoader(t).Load(path)
	require.NoError(t, err)
	require.Len(t, langs, 1)

	lang := langs[0]
	assert.Equal(t, "library", lang.Key)
	assert.Equal(t, "1", lang.Version)
	require.Len(t, lang.Classifiers, 4)

	book := lang.Classifiers[0]
	assert.Equal(t, domain.ClassifierConcept, book.Kind)
	assert.Equal(t, []domain.MetaPointer{{Language: "library", Version: "1", Key: "INamed"}}, book.Implements)
	require.Len(t, book.Features, 2)
	assert.Equal(t, domain.BuiltinPointer(domain.BuiltinString), book.Features[0].Type)
	assert.Equal(t, domain.FeatureReference, book.Features[1].Kind)
	assert.True(t, book.Features[1].Optional)

	assert.True(t, lang.Classifiers[1].Abstract)
	assert.Len(t, lang.Classifiers[3].Literals, 2)
}

func TestLoader_Load_MinimalLanguage(t *testing.T) {
	content := "key: shelf\nversion: \"1\"\nclassifiers:\n  - {kind: concept, key: Book}\n"
	path := writeFile(t, t.TempDir(), "shelf.yaml", content)

	langs, err := newLoader(t).Load(path)
	require.NoError(t, err)
	require.Len(t, langs, 1)
	require.Len(t, langs[0].Classifiers, 1)

	book := langs[0].Classifiers[0]
	assert.Equal(t, domain.MetaPointer{Language: "shelf", Version: "1", Key: "Book"}, book.Pointer())
	assert.True(t, book.IsConcrete())
}

func TestLoader_Load_JSONList(t *testing.T) {
	path := writeFile(t, t.TempDir(), "langs.json", libraryJSON)

	langs, err := newLoader(t).Load(path)
	require.NoError(t, err)
	require.Len(t, langs, 2)
	assert.Equal(t, []domain.UsedLanguage{{Key: "a", Version: "1"}}, langs[1].Dependencies)
	require.NotNil(t, langs[1].Classifiers[0].Extends)
	assert.Equal(t, "A", langs[1].Classifiers[0].Extends.Key)
}

func TestLoader_Load_MultipleDocuments(t *testing.T) {
	content := "key: a\nversion: \"1\"\nclassifiers: []\n---\nkey: b\nversion: \"1\"\nclassifiers: []\n"
	path := writeFile(t, t.TempDir(), "two.yaml", content)

	langs, err := newLoader(t).Load(path)
	require.NoError(t, err)
	require.Len(t, langs, 2)
	assert.Equal(t, "a", langs[0].Key)
	assert.Equal(t, "b", langs[1].Key)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		mention string
	}{
		{"empty file", "", "no languages"},
		{"scalar document", "just text", "expected a language"},
		{"broken yaml", "key: [", ""},
		{"missing version", "key: a\nclassifiers: []\n", "version is required"},
		{"classifier without key", "key: a\nversion: \"1\"\nclassifiers:\n  - kind: concept\n", "classifiers[0].key is required"},
		{"unknown classifier kind", "key: a\nversion: \"1\"\nclassifiers:\n  - {kind: annotation, key: X}\n", "unknown kind"},
		{
			"unknown feature kind",
			"key: a\nversion: \"1\"\nclassifiers:\n  - kind: concept\n    key: X\n    features:\n      - {kind: child, key: c, type: {language: a, version: \"1\", key: X}}\n",
			"unknown kind",
		},
		{
			"feature without type",
			"key: a\nversion: \"1\"\nclassifiers:\n  - kind: concept\n    key: X\n    features:\n      - {kind: property, key: p}\n",
			"type is required",
		},
		{
			"literals on a concept",
			"key: a\nversion: \"1\"\nclassifiers:\n  - kind: concept\n    key: X\n    literals: [{key: l}]\n",
			"declares enumeration literals",
		},
		{
			"reference to a built-in",
			"key: a\nversion: \"1\"\nclassifiers:\n  - kind: concept\n    key: X\n    features:\n      - {kind: reference, key: r, type: {language: LionCore-builtins, version: \"2023.1\", key: LionCore-builtins-String}}\n",
			"reference \"r\" of \"X\" links to data type",
		},
		{
			"containment of an enumeration",
			"key: a\nversion: \"1\"\nclassifiers:\n  - kind: concept\n    key: X\n    features:\n      - {kind: containment, key: c, type: {language: a, version: \"1\", key: E}}\n  - {kind: enumeration, key: E}\n",
			"containment \"c\" of \"X\" links to data type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.yaml", tt.content)

			_, err := newLoader(t).Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestLoader_Load_Missing(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_Load_CachesUntilFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lang.yaml", "key: a\nversion: \"1\"\nclassifiers: []\n")
	l := newLoader(t)

	first, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, l.cache.Len())

	again, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	writeFile(t, dir, "lang.yaml", "key: b\nversion: \"22\"\nclassifiers: []\n")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b", changed[0].Key)
}

func TestLoader_LoadAll(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", libraryYAML)
	b := writeFile(t, dir, "b.json", libraryJSON)

	langs, err := newLoader(t).LoadAll([]string{a, b})
	require.NoError(t, err)
	require.Len(t, langs, 3)
	assert.Equal(t, "library", langs[0].Key)
	assert.Equal(t, "a", langs[1].Key)
	assert.Equal(t, "b", langs[2].Key)

	_, err = newLoader(t).LoadAll([]string{a, filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestLoader_LoadAll_Empty(t *testing.T) {
	langs, err := newLoader(t).LoadAll(nil)
	require.NoError(t, err)
	assert.Empty(t, langs)
}
