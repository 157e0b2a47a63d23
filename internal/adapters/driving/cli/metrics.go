package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/services"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Inspect recorded measurements",
}

var metricsListCmd = &cobra.Command{
	Use:   "list [chunk]",
	Short: "List recorded measurements, newest first",
	Long:  `Lists runs recorded with 'lionweb measure --record'. If a chunk path is given, only its runs are listed.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMetricsList,
}

var metricsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded measurement",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetricsDelete,
}

func init() {
	metricsCmd.AddCommand(metricsListCmd)
	metricsCmd.AddCommand(metricsDeleteCmd)
	rootCmd.AddCommand(metricsCmd)
}

func runMetricsList(cmd *cobra.Command, args []string) error {
	svc, err := historyService()
	if err != nil {
		return err
	}

	chunkPath := ""
	if len(args) > 0 {
		chunkPath = args[0]
	}

	runs, err := svc.History(cmd.Context(), chunkPath)
	if err != nil {
		return fmt.Errorf("failed to list metrics: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No recorded measurements.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCHUNK\tNODES\tCLASSIFIERS\tUNUSED\tRECORDED")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.ChunkPath,
			run.Metrics.TotalNodes(),
			len(run.Metrics.Instantiations),
			len(run.Metrics.UnusedConcreteConcepts),
			run.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.Flush()
}

func runMetricsDelete(cmd *cobra.Command, args []string) error {
	svc, err := historyService()
	if err != nil {
		return err
	}

	id := args[0]
	if err := svc.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no recorded measurement with id %s", id)
		}
		return fmt.Errorf("failed to delete metrics: %w", err)
	}

	cmd.Printf("Deleted %s\n", id)
	return nil
}

// historyService builds a measure service for reading recorded runs.
func historyService() (*services.MeasureService, error) {
	if metricsStore == nil {
		return nil, errors.New("metrics store not configured")
	}

	// History does not depend on languages.
	index, err := services.NewSchemaIndex()
	if err != nil {
		return nil, err
	}
	return services.NewMeasureService(chunkReader, index, metricsStore), nil
}
