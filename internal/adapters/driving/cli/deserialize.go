package cli

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/factory/dynamic"
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driving"
)

var (
	deserializeLanguages []string
	deserializeDependsOn []string
	deserializeTree      bool
	deserializeJobs      int
)

var deserializeCmd = &cobra.Command{
	Use:   "deserialize <chunk>...",
	Short: "Rebuild node graphs from chunk files",
	Long: `Reads each chunk file and rebuilds its node graph against the loaded languages.

Chunks given with --depends-on are deserialized first, in order, and their
nodes are available as reference targets to every later chunk. The remaining
chunks are independent of each other and run concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDeserialize,
}

func init() {
	deserializeCmd.Flags().StringSliceVarP(&deserializeLanguages, "language", "l", nil, "Language definition file (repeatable)")
	deserializeCmd.Flags().StringSliceVarP(&deserializeDependsOn, "depends-on", "d", nil, "Chunk whose nodes references may target (repeatable)")
	deserializeCmd.Flags().BoolVar(&deserializeTree, "tree", false, "Print the containment tree of each chunk")
	deserializeCmd.Flags().IntVarP(&deserializeJobs, "jobs", "j", runtime.NumCPU(), "Maximum chunks deserialized at once")
	rootCmd.AddCommand(deserializeCmd)
}

func runDeserialize(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(deserializeLanguages)
	if err != nil {
		return err
	}

	dependents, err := deserializeDependencies(cmd, eng.deserialize, deserializeDependsOn)
	if err != nil {
		return err
	}

	results, runErr := deserializeAll(eng.deserialize, args, dependents, deserializeJobs)

	width := terminalWidth()
	for i, path := range args {
		result := results[i]
		if result == nil {
			continue
		}
		printSummary(cmd, path, result)
		if deserializeTree {
			printTree(cmd.OutOrStdout(), result.Roots, width)
		}
	}

	return runErr
}

// deserializeDependencies deserializes chunks in order, each one seeing the
// nodes of the ones before it, and returns all their nodes.
func deserializeDependencies(cmd *cobra.Command, svc driving.DeserializeService, paths []string) ([]domain.Node, error) {
	var dependents []domain.Node
	for _, path := range paths {
		result, err := svc.DeserializeFile(path, dependents)
		if err != nil {
			return nil, fmt.Errorf("dependency failed: %w", err)
		}
		printSummary(cmd, path, result)
		dependents = append(dependents, dynamic.Flatten(result.Roots)...)
	}
	return dependents, nil
}

// deserializeAll runs every chunk against the same dependents with at most
// jobs chunks in flight. Results are in path order; failed chunks leave a
// nil result and their errors are combined.
func deserializeAll(
	svc driving.DeserializeService,
	paths []string,
	dependents []domain.Node,
	jobs int,
) ([]*domain.DeserializeResult, error) {
	results := make([]*domain.DeserializeResult, len(paths))

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			result, err := svc.DeserializeFile(path, dependents)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	return results, errs.ErrorOrNil()
}

func printSummary(cmd *cobra.Command, path string, result *domain.DeserializeResult) {
	cmd.Printf("%s: %d roots, %d nodes, %d links\n",
		path, result.Stats.Roots, result.Stats.Nodes, result.Stats.Links)
}
