// Command lionweb deserializes and inspects LionWeb serialization chunks.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/codec/jsonchunk"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/factory/dynamic"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/language"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lionweb-cli/internal/core/services"
)

// Set by the release build.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open metrics store: %w", err)
	}
	defer store.Close()

	loader, err := language.NewLoader(0)
	if err != nil {
		return fmt.Errorf("failed to create language loader: %w", err)
	}

	cli.SetVersion(version)
	cli.SetDependencies(cli.Dependencies{
		Settings:   settingsService,
		Languages:  loader,
		Chunks:     jsonchunk.NewReader(),
		Metrics:    store.MetricsStore(),
		NewFactory: func() driven.NodeFactory { return dynamic.NewFactory() },
	})

	return cli.Execute()
}
