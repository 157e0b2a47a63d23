package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui"
)

var (
	browseLanguages []string
	browseDependsOn []string
)

// runBrowser starts the interactive browser. Tests replace it.
var runBrowser = tui.Run

var browseCmd = &cobra.Command{
	Use:   "browse <chunk>",
	Short: "Explore a deserialized chunk interactively",
	Long: `Deserializes one chunk and opens its containment tree in an interactive
terminal browser. Use the arrow keys or h/j/k/l to move and expand nodes.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringSliceVarP(&browseLanguages, "language", "l", nil, "Language definition file (repeatable)")
	browseCmd.Flags().StringSliceVarP(&browseDependsOn, "depends-on", "d", nil, "Chunk whose nodes references may target (repeatable)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(browseLanguages)
	if err != nil {
		return err
	}

	dependents, err := deserializeDependencies(cmd, eng.deserialize, browseDependsOn)
	if err != nil {
		return err
	}

	result, err := eng.deserialize.DeserializeFile(args[0], dependents)
	if err != nil {
		return err
	}

	return runBrowser(cmd.Context(), args[0], result.Roots)
}
