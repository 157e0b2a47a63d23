package language

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/validation"
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lionweb-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.LanguageLoader = (*Loader)(nil)

// DefaultCacheSize is the number of files a Loader keeps parsed.
const DefaultCacheSize = 64

// cachedFile is a parsed file together with the stat it was parsed at.
type cachedFile struct {
	modTime   time.Time
	size      int64
	languages []domain.Language
}

// Loader reads language files. Parsed files are cached until their
// modification time or size changes, which keeps repeated loads in watch
// mode cheap. A Loader is safe for concurrent use.
type Loader struct {
	validate *validator.Validate
	cache    *lru.Cache[string, cachedFile]
}

// NewLoader creates a loader caching up to cacheSize files.
// A cacheSize below one uses DefaultCacheSize.
func NewLoader(cacheSize int) (*Loader, error) {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, cachedFile](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create language cache: %w", err)
	}

	return &Loader{validate: validation.New("yaml"), cache: cache}, nil
}

// Load reads every language defined in the file at path.
func (l *Loader) Load(path string) ([]domain.Language, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	if cached, ok := l.cache.Get(abs); ok && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		logger.Debug("Using cached languages of %s", path)
		return cached.languages, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	languages, err := l.parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.cache.Add(abs, cachedFile{modTime: info.ModTime(), size: info.Size(), languages: languages})
	logger.Debug("Loaded %d languages from %s", len(languages), path)
	return languages, nil
}

// LoadAll reads all files in order and concatenates their languages.
func (l *Loader) LoadAll(paths []string) ([]domain.Language, error) {
	var all []domain.Language
	for _, p := range paths {
		languages, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		all = append(all, languages...)
	}
	return all, nil
}

func (l *Loader) parse(data []byte) ([]domain.Language, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var languages []domain.Language
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}

		decoded, err := decodeDocument(&doc)
		if err != nil {
			return nil, err
		}
		languages = append(languages, decoded...)
	}

	if len(languages) == 0 {
		return nil, fmt.Errorf("%w: no languages defined", domain.ErrInvalidInput)
	}
	for i := range languages {
		lang := &languages[i]
		for j := range lang.Classifiers {
			lang.Classifiers[j].Language = lang.Ref()
		}
		if err := l.check(lang); err != nil {
			return nil, err
		}
	}
	return languages, nil
}

func decodeDocument(doc *yaml.Node) ([]domain.Language, error) {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.MappingNode:
		var lang domain.Language
		if err := root.Decode(&lang); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return []domain.Language{lang}, nil
	case yaml.SequenceNode:
		var langs []domain.Language
		if err := root.Decode(&langs); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return langs, nil
	default:
		return nil, fmt.Errorf("%w: line %d: expected a language or a list of languages", domain.ErrInvalidInput, root.Line)
	}
}

// check validates required fields and the closed kind tags.
func (l *Loader) check(lang *domain.Language) error {
	if err := l.validate.Struct(lang); err != nil {
		return fmt.Errorf("%w: language %q: %s", domain.ErrInvalidInput, lang.Key, validation.Describe(err))
	}

	kinds := make(map[string]domain.ClassifierKind, len(lang.Classifiers))
	for _, c := range lang.Classifiers {
		kinds[c.Key] = c.Kind
	}

	for _, c := range lang.Classifiers {
		if !c.Kind.IsValid() {
			return fmt.Errorf("%w: classifier %q has unknown kind %q", domain.ErrInvalidInput, c.Key, c.Kind)
		}
		for _, f := range c.Features {
			if !f.Kind.IsValid() {
				return fmt.Errorf("%w: feature %q of %q has unknown kind %q", domain.ErrInvalidInput, f.Key, c.Key, f.Kind)
			}
			if f.IsLink() && isDataType(lang.Key, kinds, f.Type) {
				return fmt.Errorf("%w: %s %q of %q links to data type %s", domain.ErrInvalidInput, f.Kind, f.Key, c.Key, f.Type)
			}
		}
		if len(c.Literals) > 0 && c.Kind != domain.ClassifierEnumeration {
			return fmt.Errorf("%w: %s %q declares enumeration literals", domain.ErrInvalidInput, c.Kind, c.Key)
		}
	}
	return nil
}

// isDataType reports whether ptr names a built-in primitive or a primitive
// or enumeration of the language being checked.
func isDataType(langKey string, kinds map[string]domain.ClassifierKind, ptr domain.MetaPointer) bool {
	switch ptr.Language {
	case domain.BuiltinsLanguageKey:
		return true
	case langKey:
		kind := kinds[ptr.Key]
		return kind == domain.ClassifierPrimitiveType || kind == domain.ClassifierEnumeration
	default:
		return false
	}
}
