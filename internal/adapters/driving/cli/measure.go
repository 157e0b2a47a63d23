package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

var (
	measureLanguages []string
	measureRecord    bool
	measureNoWrite   bool
)

var measureCmd = &cobra.Command{
	Use:   "measure <chunk>...",
	Short: "Count classifier instantiations of chunk files",
	Long: `Counts how many nodes of each classifier a chunk contains and lists the
concrete concepts of the loaded languages that no node instantiates.

The result of each chunk is written next to it as <chunk>.metrics.json.
With --record the run is also stored in the metrics history.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMeasure,
}

func init() {
	measureCmd.Flags().StringSliceVarP(&measureLanguages, "language", "l", nil, "Language definition file (repeatable)")
	measureCmd.Flags().BoolVar(&measureRecord, "record", false, "Store the run in the metrics history")
	measureCmd.Flags().BoolVar(&measureNoWrite, "no-write", false, "Do not write <chunk>.metrics.json files")
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(measureLanguages)
	if err != nil {
		return err
	}

	var errs *multierror.Error
	for _, path := range args {
		run, err := eng.measure.MeasureFile(cmd.Context(), path, measureRecord)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		printMetrics(cmd, path, run.Metrics)

		if measureNoWrite {
			continue
		}
		out := metricsFilePath(path)
		if err := writeMetricsFile(out, run.Metrics); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("write %s: %w", out, err))
			continue
		}
		cmd.Printf("Wrote %s\n", out)
	}

	return errs.ErrorOrNil()
}

func printMetrics(cmd *cobra.Command, path string, metrics domain.ChunkMetrics) {
	cmd.Printf("%s: %d nodes\n", path, metrics.TotalNodes())

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  CLASSIFIER\tLANGUAGE\tCOUNT")
	for _, inst := range metrics.Instantiations {
		name := inst.Name
		if name == "" {
			name = inst.Key + " (unknown)"
		}
		fmt.Fprintf(tw, "  %s\t%s@%s\t%d\n", name, inst.Language, inst.Version, inst.Count)
	}
	_ = tw.Flush()

	if len(metrics.UnusedConcreteConcepts) > 0 {
		unused := make([]string, 0, len(metrics.UnusedConcreteConcepts))
		for _, ptr := range metrics.UnusedConcreteConcepts {
			unused = append(unused, ptr.Key)
		}
		cmd.Printf("  Unused concepts: %s\n", strings.Join(unused, ", "))
	}
}

// metricsFilePath replaces the chunk file extension with .metrics.json.
func metricsFilePath(chunkPath string) string {
	return strings.TrimSuffix(chunkPath, filepath.Ext(chunkPath)) + ".metrics.json"
}

func writeMetricsFile(path string, metrics domain.ChunkMetrics) error {
	data, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
