package actions_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gitx.dev/gitx/internal/actions"
	"gitx.dev/gitx/internal/config"
	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/github"
)

const releaseFeatureMerge = "git merge --no-ff --message [gitx] Release feature to main\n\nConnected to https://github.com/owner/repo/pull/1 feature"

func TestReleaseAction(t *testing.T) {
	t.Run("releases after confirmation", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.AfterRelease = []string{"bundle exec rake 'release:notify[main]'"}
		f := newFixtureWithConfig(t, cfg).onBranch("feature", []string{"main", "feature"}, []string{"origin/main"})
		f.prompter.Confirms = []bool{true}

		outcome, err := actions.ReleaseAction(f.ctx, actions.ReleaseOptions{})
		require.NoError(t, err)
		require.Equal(t, actions.Completed, outcome)

		require.Equal(t, []string{"Release feature to main?"}, f.prompter.Questions)
		require.Equal(t, []string{
			"git checkout feature",
			"git pull origin main",
			"git push origin HEAD",
			"git checkout main",
			"git pull origin main",
			releaseFeatureMerge,
			"git push origin HEAD",
			"bundle exec rake release:notify[main]",
		}, f.runner.MutatingCommands())
		require.Equal(t, []string{"feature"}, f.host.Created)
	})

	t.Run("declining the first confirmation runs nothing", func(t *testing.T) {
		f := newFixture(t).onBranch("feature", []string{"main", "feature"}, []string{"origin/main"})
		f.prompter.Confirms = []bool{false}

		outcome, err := actions.ReleaseAction(f.ctx, actions.ReleaseOptions{})
		require.NoError(t, err)
		require.Equal(t, actions.Declined, outcome)
		require.Empty(t, f.runner.MutatingCommands())
	})

	t.Run("reserved branches are refused before prompting", func(t *testing.T) {
		f := newFixture(t)

		for _, branch := range []string{"main", "staging", "prototype"} {
			_, err := actions.ReleaseAction(f.ctx, actions.ReleaseOptions{Branch: branch})
			require.True(t, errors.Is(err, gitxerrors.ErrConfiguration), branch)
		}
		require.Empty(t, f.prompter.Questions)
		require.Empty(t, f.runner.Calls)
	})

	t.Run("declining a failing build status skips merge and push", func(t *testing.T) {
		f := newFixture(t).onBranch("feature", []string{"main", "feature"}, []string{"origin/main"})
		f.host.Statuses["feature"] = github.StatusFailure
		f.prompter.Confirms = []bool{true, false}

		outcome, err := actions.ReleaseAction(f.ctx, actions.ReleaseOptions{})
		require.NoError(t, err)
		require.Equal(t, actions.Declined, outcome)
		require.Equal(t, []string{"Release feature to main?", "Proceed with release?"}, f.prompter.Questions)

		require.False(t, f.runner.RanPrefix("git merge"))
		require.False(t, f.runner.Ran("git checkout main"))
		require.Equal(t, []string{
			"git checkout feature",
			"git pull origin main",
			"git push origin HEAD",
		}, f.runner.MutatingCommands())
	})

	t.Run("pending status can be overridden", func(t *testing.T) {
		f := newFixture(t).onBranch("feature", []string{"main", "feature"}, []string{"origin/main"})
		f.host.Statuses["feature"] = github.StatusPending
		f.prompter.Confirms = []bool{true, true}

		outcome, err := actions.ReleaseAction(f.ctx, actions.ReleaseOptions{})
		require.NoError(t, err)
		require.Equal(t, actions.Completed, outcome)
		require.True(t, f.runner.Ran(releaseFeatureMerge))
	})

	t.Run("integrates base into the default aggregate and cleans up", func(t *testing.T) {
		f := newFixture(t).onBranch("feature", []string{"main", "feature"}, []string{"origin/main", "origin/staging"})
		f.prompter.Confirms = []bool{true}
		f.runner.On("git rev-parse HEAD", "REF")

		outcome, err := actions.ReleaseAction(f.ctx, actions.ReleaseOptions{Integrate: true, Cleanup: true})
		require.NoError(t, err)
		require.Equal(t, actions.Completed, outcome)

		require.True(t, f.runner.Ran("git merge --no-ff --message [gitx] Integrate main into staging main"))
		require.True(t, f.runner.Ran("git remote prune origin"))

		mutating := f.runner.MutatingCommands()
		require.Equal(t, "git remote prune origin", mutating[len(mutating)-1])
	})

	t.Run("conflicts on the base branch name the release to rerun", func(t *testing.T) {
		f := newFixture(t).onBranch("feature", []string{"main", "feature"}, []string{"origin/main"})
		f.prompter.Confirms = []bool{true}
		f.runner.Fail(releaseFeatureMerge, "CONFLICT (content): Merge conflict in app.go")

		_, err := actions.ReleaseAction(f.ctx, actions.ReleaseOptions{})
		require.ErrorIs(t, err, gitxerrors.ErrMergeConflict)
		var conflict *gitxerrors.MergeConflictError
		require.True(t, errors.As(err, &conflict))
		require.Equal(t, "gitx release feature", conflict.RecoveryCommand)

		mutating := f.runner.MutatingCommands()
		require.Equal(t, releaseFeatureMerge, mutating[len(mutating)-1])
	})

	t.Run("failed base pull is a merge conflict", func(t *testing.T) {
		f := newFixture(t).onBranch("feature", []string{"main", "feature"}, []string{"origin/main"})
		f.prompter.Confirms = []bool{true}
		f.runner.On("git pull origin main", "")
		f.runner.Fail("git pull origin main", "CONFLICT")

		_, err := actions.ReleaseAction(f.ctx, actions.ReleaseOptions{})
		require.ErrorIs(t, err, gitxerrors.ErrMergeConflict)
		require.False(t, f.runner.Ran(releaseFeatureMerge))
	})
}
