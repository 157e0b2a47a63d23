package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lionweb-cli/internal/logger"
)

var (
	watchLanguages []string
	watchDependsOn []string
	watchDebounce  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Deserialize chunk files whenever they change",
	Long: `Watches a directory and deserializes every chunk file (*.json) that is
created or written. Language files are re-read when they change, so edits to
either side are picked up without restarting.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVarP(&watchLanguages, "language", "l", nil, "Language definition file (repeatable)")
	watchCmd.Flags().StringSliceVarP(&watchDependsOn, "depends-on", "d", nil, "Chunk whose nodes references may target (repeatable)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Wait this long after the last write before deserializing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for chunk changes (Ctrl+C to stop)...\n", dir)
	return watchLoop(ctx, cmd, watcher.Events, watcher.Errors, watchDebounce)
}

// watchLoop deserializes chunk files named by write and create events until
// ctx is done. Events for the same file within debounce are coalesced.
func watchLoop(
	ctx context.Context,
	cmd *cobra.Command,
	events <-chan fsnotify.Event,
	errs <-chan error,
	debounce time.Duration,
) error {
	d := newDebouncer(debounce)
	defer d.stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isChunkFile(event.Name) {
				continue
			}
			logger.Debug("Chunk file changed: %s (%s)", event.Name, event.Op)

			if debounce <= 0 {
				redeserialize(cmd, event.Name)
				continue
			}
			d.schedule(ctx, event.Name)

		case f := <-d.ready:
			if d.take(f) {
				redeserialize(cmd, f.name)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error: %v", err)

		case <-ctx.Done():
			return nil
		}
	}
}

// firing is sent when a debounce timer expires.
type firing struct {
	name string
	seq  uint64
}

type pendingTimer struct {
	timer *time.Timer
	seq   uint64
}

// debouncer holds one timer per file. Only the firing of the most recently
// scheduled timer for a file is taken; a timer that expired while a newer
// event was being scheduled is dropped.
type debouncer struct {
	delay   time.Duration
	ready   chan firing
	seq     uint64
	pending map[string]pendingTimer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		ready:   make(chan firing),
		pending: make(map[string]pendingTimer),
	}
}

func (d *debouncer) schedule(ctx context.Context, name string) {
	if p, exists := d.pending[name]; exists {
		p.timer.Stop()
	}
	d.seq++
	f := firing{name: name, seq: d.seq}
	d.pending[name] = pendingTimer{
		seq: f.seq,
		timer: time.AfterFunc(d.delay, func() {
			select {
			case d.ready <- f:
			case <-ctx.Done():
			}
		}),
	}
}

// take reports whether f belongs to the current timer of its file and, if
// so, clears it.
func (d *debouncer) take(f firing) bool {
	p, exists := d.pending[f.name]
	if !exists || p.seq != f.seq {
		logger.Debug("Dropping stale debounce for %s", f.name)
		return false
	}
	delete(d.pending, f.name)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

// redeserialize rebuilds the engine and deserializes one chunk, reporting
// failures without stopping the watch.
func redeserialize(cmd *cobra.Command, path string) {
	eng, err := newEngine(watchLanguages)
	if err != nil {
		cmd.Printf("%s: %v\n", path, err)
		return
	}

	dependents, err := deserializeDependencies(cmd, eng.deserialize, watchDependsOn)
	if err != nil {
		cmd.Printf("%s: %v\n", path, err)
		return
	}

	result, err := eng.deserialize.DeserializeFile(path, dependents)
	if err != nil {
		cmd.Printf("%v\n", err)
		return
	}
	printSummary(cmd, path, result)
}

// isChunkFile reports whether name looks like a chunk file rather than a
// metrics file written by 'lionweb measure'.
func isChunkFile(name string) bool {
	base := filepath.Base(name)
	return filepath.Ext(base) == ".json" && !strings.HasSuffix(base, ".metrics.json")
}
