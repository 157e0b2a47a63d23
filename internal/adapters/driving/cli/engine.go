package cli

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/services"
	"github.com/custodia-labs/lionweb-cli/internal/logger"
)

// engine holds the services built for one set of language files.
type engine struct {
	deserialize *services.DeserializeService
	measure     *services.MeasureService
}

// newEngine loads the configured language files followed by extra and
// builds the services that depend on them.
func newEngine(extra []string) (*engine, error) {
	if languageLoader == nil || chunkReader == nil || newFactory == nil {
		return nil, errors.New("deserializer not configured")
	}

	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *stored
	}

	paths := languagePaths(settings.Languages.Paths, extra)
	languages, err := languageLoader.LoadAll(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load languages: %w", err)
	}
	logger.Debug("Loaded %d languages from %d files", len(languages), len(paths))

	index, err := services.NewSchemaIndex(languages...)
	if err != nil {
		return nil, fmt.Errorf("failed to index languages: %w", err)
	}

	return &engine{
		deserialize: services.NewDeserializeService(
			chunkReader, index, newFactory,
			services.WithScalarFailurePolicy(settings.Deserialize.ScalarFailure),
		),
		measure: services.NewMeasureService(chunkReader, index, metricsStore),
	}, nil
}

// languagePaths concatenates path lists, keeping the first occurrence of
// each path.
func languagePaths(lists ...[]string) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, list := range lists {
		for _, p := range list {
			if seen[p] {
				continue
			}
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths
}
