package driven

import "github.com/custodia-labs/lionweb-cli/internal/core/domain"

// LanguageLoader reads language definitions from files.
type LanguageLoader interface {
	// Load reads every language defined in the file at path.
	Load(path string) ([]domain.Language, error)

	// LoadAll reads all files in order and concatenates their languages.
	LoadAll(paths []string) ([]domain.Language, error)
}
