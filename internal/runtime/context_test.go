package runtime_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitx.dev/gitx/internal/config"
	"gitx.dev/gitx/internal/github"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/testhelpers"
)

func TestReviewClientIsBuiltOnce(t *testing.T) {
	ctx := runtime.NewContext(testhelpers.NewFakeRunner(), config.Defaults(), nil, nil, nil, t.TempDir())

	_, err := ctx.ReviewClient()
	require.Error(t, err)

	builds := 0
	host := testhelpers.NewFakeReviewHost()
	ctx.SetReviewFactory(func(context.Context) (github.Client, error) {
		builds++
		return host, nil
	})

	for i := 0; i < 3; i++ {
		client, err := ctx.ReviewClient()
		require.NoError(t, err)
		require.Same(t, host, client)
	}
	require.Equal(t, 1, builds)
}

func TestReviewFactoryErrorsAreReturned(t *testing.T) {
	ctx := runtime.NewContext(testhelpers.NewFakeRunner(), config.Defaults(), nil, nil, nil, t.TempDir())
	ctx.SetReviewFactory(func(context.Context) (github.Client, error) {
		return nil, errors.New("no token")
	})

	_, err := ctx.ReviewClient()
	require.EqualError(t, err, "no token")
}

func TestGetContextLoadsRepositoryConfig(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	require.NoError(t, os.WriteFile(filepath.Join(scene.Dir, config.FileName), []byte("base_branch: trunk\nremote: upstream\n"), 0o600))

	nested := filepath.Join(scene.Dir, "nested", "dir")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	ctx, err := runtime.GetContext(context.Background(), nested, nil)
	require.NoError(t, err)

	wantRoot, err := filepath.EvalSymlinks(scene.Dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(ctx.RepoRoot)
	require.NoError(t, err)
	require.Equal(t, wantRoot, gotRoot)

	require.Equal(t, "trunk", ctx.Config.BaseBranch)
	require.Equal(t, "upstream", ctx.Git.Remote())
	require.Equal(t, []string{"staging", "prototype"}, ctx.Config.AggregateBranches)

	branch, err := ctx.Git.CurrentBranch(ctx.Context)
	require.NoError(t, err)
	require.Equal(t, "main", branch)
}

func TestGetContextOutsideRepository(t *testing.T) {
	_, err := runtime.GetContext(context.Background(), t.TempDir(), nil)
	require.Error(t, err)
}
