package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/codec/jsonchunk"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/factory/dynamic"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/language"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lionweb-cli/internal/core/services"
)

const shelfLanguage = `
key: shelf
version: "1"
name: Shelf
classifiers:
  - kind: concept
    key: Library
    name: Library
    partition: true
    features:
      - kind: property
        key: library-name
        name: name
        type: {language: LionCore-builtins, version: "2023.1", key: LionCore-builtins-String}
      - kind: containment
        key: books
        name: books
        multiple: true
        type: {language: shelf, version: "1", key: Book}
  - kind: concept
    key: Book
    name: Book
    features:
      - kind: property
        key: pages
        name: pages
        type: {language: LionCore-builtins, version: "2023.1", key: LionCore-builtins-Integer}
      - kind: reference
        key: author
        name: author
        type: {language: shelf, version: "1", key: Writer}
  - kind: concept
    key: Writer
    name: Writer
  - kind: concept
    key: Magazine
    name: Magazine
`

const writersChunk = `{
  "serializationFormatVersion": "2023.1",
  "languages": [{"key": "shelf", "version": "1"}],
  "nodes": [
    {"id": "w1", "classifier": {"language": "shelf", "version": "1", "key": "Writer"},
     "properties": [], "containments": [], "references": [], "annotations": [], "parent": null}
  ]
}`

const booksChunk = `{
  "serializationFormatVersion": "2023.1",
  "languages": [{"key": "shelf", "version": "1"}],
  "nodes": [
    {"id": "lib1", "classifier": {"language": "shelf", "version": "1", "key": "Library"},
     "properties": [{"property": {"language": "shelf", "version": "1", "key": "library-name"}, "value": "City"}],
     "containments": [{"containment": {"language": "shelf", "version": "1", "key": "books"}, "children": ["b1"]}],
     "references": [], "annotations": [], "parent": null},
    {"id": "b1", "classifier": {"language": "shelf", "version": "1", "key": "Book"},
     "properties": [{"property": {"language": "shelf", "version": "1", "key": "pages"}, "value": "320"}],
     "containments": [],
     "references": [{"reference": {"language": "shelf", "version": "1", "key": "author"}, "targets": [{"resolveInfo": "Ann", "reference": "w1"}]}],
     "annotations": [], "parent": "lib1"}
  ]
}`

const brokenChunk = `{
  "serializationFormatVersion": "2023.1",
  "languages": [{"key": "shelf", "version": "1"}],
  "nodes": [
    {"id": "b9", "classifier": {"language": "shelf", "version": "1", "key": "Book"},
     "properties": [{"property": {"language": "shelf", "version": "1", "key": "pages"}, "value": "many"}],
     "containments": [], "references": [], "annotations": [], "parent": null}
  ]
}`

// testEnv holds the files written for a CLI test.
type testEnv struct {
	dir      string
	language string
	writers  string
	books    string
	broken   string
	metrics  driven.MetricsStore
	settings *services.SettingsService
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// setupTestServices wires in-memory and file adapters into the CLI and
// returns the test files along with a cleanup func.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:      dir,
		language: writeTestFile(t, dir, "shelf.yaml", shelfLanguage),
		writers:  writeTestFile(t, dir, "writers.json", writersChunk),
		books:    writeTestFile(t, dir, "books.json", booksChunk),
		broken:   writeTestFile(t, dir, "broken.json", brokenChunk),
		metrics:  memory.NewMetricsStore(),
		settings: services.NewSettingsService(memory.NewConfigStore()),
	}

	loader, err := language.NewLoader(8)
	require.NoError(t, err)

	SetDependencies(Dependencies{
		Settings:   env.settings,
		Languages:  loader,
		Chunks:     jsonchunk.NewReader(),
		Metrics:    env.metrics,
		NewFactory: func() driven.NodeFactory { return dynamic.NewFactory() },
	})

	return env, func() {
		SetDependencies(Dependencies{})
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

// resetFlags restores every flag below cmd to its default so tests sharing
// rootCmd do not see each other's values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
