package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

func TestBrowseCmd_OpensBrowser(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	var gotTitle string
	var gotRoots []domain.Node
	original := runBrowser
	runBrowser = func(_ context.Context, title string, roots []domain.Node) error {
		gotTitle = title
		gotRoots = roots
		return nil
	}
	defer func() { runBrowser = original }()

	_, err := execute(t, "browse", "-l", env.language, "-d", env.writers, env.books)

	require.NoError(t, err)
	assert.Equal(t, env.books, gotTitle)
	require.Len(t, gotRoots, 1)
	assert.Equal(t, "lib1", gotRoots[0].ID())
}

func TestBrowseCmd_DeserializeError(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	called := false
	original := runBrowser
	runBrowser = func(context.Context, string, []domain.Node) error {
		called = true
		return nil
	}
	defer func() { runBrowser = original }()

	_, err := execute(t, "browse", "-l", env.language, env.broken)

	require.Error(t, err)
	assert.False(t, called)
}

func TestBrowseCmd_RequiresOneArg(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "browse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
