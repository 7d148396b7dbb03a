package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0600))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when config does not exist", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		require.Equal(t, Defaults(), cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeConfig(t, dir, `base_branch: master
aggregate_branches:
  - qa
after_release:
  - ./bin/notify --channel deploys
`)

		cfg, err := Load(dir)
		require.NoError(t, err)
		require.Equal(t, "master", cfg.BaseBranch)
		require.Equal(t, []string{"qa"}, cfg.AggregateBranches)
		require.Equal(t, []string{"./bin/notify --channel deploys"}, cfg.AfterRelease)
		// untouched keys keep their defaults
		require.Equal(t, []string{"main", "staging"}, cfg.TaggableBranches)
		require.Equal(t, "db/migrate", cfg.MigrationsDir)
		require.Equal(t, "origin", cfg.Remote)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeConfig(t, dir, "aggregate_branches: [unclosed")

		_, err := Load(dir)
		require.Error(t, err)
	})
}

func TestClassifier(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		BaseBranch:        "main",
		AggregateBranches: []string{"staging"},
		ReservedBranches:  []string{"release"},
		TaggableBranches:  []string{"main"},
	}

	require.True(t, cfg.IsBase("main"))
	require.False(t, cfg.IsBase("staging"))

	require.True(t, cfg.IsAggregate("staging"))
	require.False(t, cfg.IsAggregate("main"))

	// reserved is the union even though the file only lists "release"
	require.True(t, cfg.IsReserved("release"))
	require.True(t, cfg.IsReserved("staging"))
	require.True(t, cfg.IsReserved("main"))
	require.False(t, cfg.IsReserved("feature"))

	require.True(t, cfg.IsTaggable("main"))
	require.False(t, cfg.IsTaggable("staging"))

	require.Equal(t, "staging", cfg.DefaultAggregate())
	require.Equal(t, "", (&Config{}).DefaultAggregate())
}
