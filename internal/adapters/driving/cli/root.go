// Package cli provides the lionweb command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lionweb-cli/internal/core/services"
	"github.com/custodia-labs/lionweb-cli/internal/logger"
)

var version = "dev"

var verbose bool

var (
	settingsService driving.SettingsService
	languageLoader  driven.LanguageLoader
	chunkReader     driven.ChunkReader
	metricsStore    driven.MetricsStore
	newFactory      services.FactoryProvider
)

// Dependencies are the adapters and services commands run against.
// Services that depend on the loaded languages are built per command.
type Dependencies struct {
	Settings   driving.SettingsService
	Languages  driven.LanguageLoader
	Chunks     driven.ChunkReader
	Metrics    driven.MetricsStore
	NewFactory services.FactoryProvider
}

var rootCmd = &cobra.Command{
	Use:   "lionweb",
	Short: "Deserialize and inspect LionWeb serialization chunks",
	Long: `lionweb reads serialization chunks and rebuilds their node graphs
against language definitions loaded from YAML or JSON files.

Use 'lionweb deserialize' to rebuild chunks, 'lionweb measure' to count how
chunks use their languages and 'lionweb watch' to re-run on file changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
}

// SetVersion sets the version reported by 'lionweb version'.
func SetVersion(v string) {
	version = v
}

// SetDependencies configures the adapters used by all commands.
func SetDependencies(deps Dependencies) {
	settingsService = deps.Settings
	languageLoader = deps.Languages
	chunkReader = deps.Chunks
	metricsStore = deps.Metrics
	newFactory = deps.NewFactory
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
