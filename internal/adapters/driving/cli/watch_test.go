package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newWatchCommand(out *syncBuffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd
}

func TestWatchCmd_MissingDir(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "watch", filepath.Join(env.dir, "nope"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestWatchLoop_HandlesChunkEvents(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	watchLanguages = []string{env.language}

	out := &syncBuffer{}
	events := make(chan fsnotify.Event, 4)
	events <- fsnotify.Event{Name: env.writers, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: filepath.Join(env.dir, "writers.metrics.json"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: env.writers, Op: fsnotify.Remove}
	events <- fsnotify.Event{Name: env.broken, Op: fsnotify.Create}
	close(events)

	err := watchLoop(context.Background(), newWatchCommand(out), events, make(chan error), 0)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), env.writers+": 1 roots, 1 nodes, 0 links"))
	assert.Contains(t, out.String(), env.broken+": deserialize (instantiating)")
}

func TestWatchLoop_Debounces(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	watchLanguages = []string{env.language}

	out := &syncBuffer{}
	events := make(chan fsnotify.Event, 3)
	for i := 0; i < 3; i++ {
		events <- fsnotify.Event{Name: env.writers, Op: fsnotify.Write}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, newWatchCommand(out), events, make(chan error), 50*time.Millisecond)
	}()

	summary := env.writers + ": 1 roots"
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), summary)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, strings.Count(out.String(), summary))
}

func TestWatchLoop_WatcherErrorsDoNotStop(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	errs := make(chan error, 1)
	errs <- errors.New("boom")
	close(errs)

	err := watchLoop(context.Background(), newWatchCommand(&syncBuffer{}), make(chan fsnotify.Event), errs, 0)
	assert.NoError(t, err)
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := watchLoop(ctx, newWatchCommand(&syncBuffer{}), make(chan fsnotify.Event), make(chan error), 0)
	assert.NoError(t, err)
}

func TestDebouncer_DropsStaleFiring(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := newDebouncer(10 * time.Millisecond)
	defer d.stop()

	receive := func() firing {
		t.Helper()
		select {
		case f := <-d.ready:
			return f
		case <-time.After(2 * time.Second):
			require.FailNow(t, "debounce timer did not fire")
			return firing{}
		}
	}

	d.schedule(ctx, "a.json")
	first := receive()

	// A write arrives after the first timer fired but before its firing is
	// handled.
	d.schedule(ctx, "a.json")
	assert.False(t, d.take(first))
	require.Contains(t, d.pending, "a.json", "the newer timer stays pending")

	second := receive()
	assert.Equal(t, "a.json", second.name)
	assert.True(t, d.take(second))
	assert.False(t, d.take(second))
	assert.Empty(t, d.pending)
}

func TestDebouncer_FilesAreIndependent(t *testing.T) {
	d := newDebouncer(time.Hour)
	defer d.stop()

	d.schedule(context.Background(), "a.json")
	d.schedule(context.Background(), "b.json")
	d.schedule(context.Background(), "a.json")

	require.Len(t, d.pending, 2)
	assert.True(t, d.take(firing{name: "b.json", seq: d.pending["b.json"].seq}))
	assert.False(t, d.take(firing{name: "a.json", seq: 1}))
	assert.True(t, d.take(firing{name: "a.json", seq: 3}))
}
