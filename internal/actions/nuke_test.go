package actions_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitx.dev/gitx/internal/actions"
	gitxerrors "gitx.dev/gitx/internal/errors"
)

func scriptStagingTags(f *fixture) {
	f.runner.On("git tag --list builds/staging/*", "builds/staging/2024-01-01-00-00-00\nbuilds/staging/2024-02-01-00-00-00")
	f.runner.On("git tag --list build-staging-*", "build-staging-2023-12-31-23-59-59")
}

func TestNukeAction(t *testing.T) {
	t.Run("refuses non-aggregate branches before running anything", func(t *testing.T) {
		f := newFixture(t)

		for _, branch := range []string{"feature", "main"} {
			outcome, err := actions.NukeAction(f.ctx, actions.NukeOptions{Branch: branch, Destination: "staging"})
			require.True(t, errors.Is(err, gitxerrors.ErrConfiguration), branch)
			require.Equal(t, actions.Completed, outcome)
		}
		require.Empty(t, f.runner.Calls)
		require.Empty(t, f.prompter.Questions)
	})

	t.Run("resets to the newest build tag", func(t *testing.T) {
		f := newFixture(t)
		scriptStagingTags(f)
		f.prompter.Inputs = []string{""}
		f.prompter.Confirms = []bool{true}

		outcome, err := actions.NukeAction(f.ctx, actions.NukeOptions{Branch: "staging"})
		require.NoError(t, err)
		require.Equal(t, actions.Completed, outcome)

		require.Equal(t, []string{
			"What branch do you want to reset staging to?",
			"Reset staging to builds/staging/2024-02-01-00-00-00?",
		}, f.prompter.Questions)
		require.Equal(t, []string{
			"git fetch --tags",
			"git checkout main",
			"git branch --delete --force staging",
			"git push origin --delete staging",
			"git checkout -b staging builds/staging/2024-02-01-00-00-00",
			"git push origin staging",
			"git branch --set-upstream-to origin/staging staging",
			"git checkout main",
		}, f.runner.MutatingCommands())

		for _, call := range f.runner.Calls {
			switch call.String() {
			case "git branch --delete --force staging", "git push origin --delete staging":
				require.True(t, call.Opts.AllowFailure, call.String())
			case "git push origin staging":
				require.False(t, call.Opts.AllowFailure)
			}
		}
	})

	t.Run("legacy tags take part in the ordering", func(t *testing.T) {
		f := newFixture(t)
		f.runner.On("git tag --list builds/prototype/*", "builds/prototype/2024-01-01-00-00-00")
		f.runner.On("git tag --list build-prototype-*", "build-prototype-2024-03-01-00-00-00")
		f.prompter.Confirms = []bool{true}

		_, err := actions.NukeAction(f.ctx, actions.NukeOptions{Branch: "staging", Destination: "prototype"})
		require.NoError(t, err)
		require.True(t, f.runner.Ran("git checkout -b staging build-prototype-2024-03-01-00-00-00"))
	})

	t.Run("missing build tags are a not found error", func(t *testing.T) {
		f := newFixture(t)

		_, err := actions.NukeAction(f.ctx, actions.NukeOptions{Branch: "staging", Destination: "staging"})
		require.True(t, errors.Is(err, gitxerrors.ErrNotFound))
		require.Contains(t, err.Error(), "No known good tag found for branch staging")
		require.Equal(t, []string{"git fetch --tags"}, f.runner.MutatingCommands())
	})

	t.Run("declining the reset changes nothing", func(t *testing.T) {
		f := newFixture(t)
		scriptStagingTags(f)
		f.prompter.Confirms = []bool{false}

		outcome, err := actions.NukeAction(f.ctx, actions.NukeOptions{Branch: "staging", Destination: "staging"})
		require.NoError(t, err)
		require.Equal(t, actions.Declined, outcome)
		require.Equal(t, []string{"git fetch --tags"}, f.runner.MutatingCommands())
	})

	t.Run("declining pending migrations changes nothing", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, os.MkdirAll(filepath.Join(f.ctx.RepoRoot, "db", "migrate"), 0o755))
		scriptStagingTags(f)
		f.runner.On("git diff builds/staging/2024-02-01-00-00-00...staging --name-only db/migrate",
			"db/migrate/20240201_add_users.rb\ndb/migrate/20240202_add_index.rb")
		f.prompter.Confirms = []bool{true, false}

		outcome, err := actions.NukeAction(f.ctx, actions.NukeOptions{Branch: "staging", Destination: "staging"})
		require.NoError(t, err)
		require.Equal(t, actions.Declined, outcome)
		require.Len(t, f.prompter.Questions, 2)
		require.Equal(t, []string{"git fetch --tags"}, f.runner.MutatingCommands())
	})

	t.Run("no migrations directory skips the migration check", func(t *testing.T) {
		f := newFixture(t)
		scriptStagingTags(f)
		f.prompter.Confirms = []bool{true}

		_, err := actions.NukeAction(f.ctx, actions.NukeOptions{Branch: "staging", Destination: "staging"})
		require.NoError(t, err)
		require.False(t, f.runner.RanPrefix("git diff"))
	})

	t.Run("an unreadable migrations path stops the reset", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, os.WriteFile(filepath.Join(f.ctx.RepoRoot, "db"), []byte("not a directory"), 0o600))
		scriptStagingTags(f)
		f.prompter.Confirms = []bool{true}

		_, err := actions.NukeAction(f.ctx, actions.NukeOptions{Branch: "staging", Destination: "staging"})
		require.ErrorContains(t, err, "failed to check migrations directory")
		require.Equal(t, []string{"git fetch --tags"}, f.runner.MutatingCommands())
	})
}
