package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitx.dev/gitx/internal/actions"
)

func TestStartAction(t *testing.T) {
	t.Run("creates the branch from the updated base", func(t *testing.T) {
		f := newFixture(t).onBranch("main", []string{"main"}, []string{"origin/main"})

		branch, err := actions.StartAction(f.ctx, actions.StartOptions{Branch: "feature/login", Issue: "#42"})
		require.NoError(t, err)
		require.Equal(t, "feature/login", branch)
		require.Equal(t, []string{
			"git checkout main",
			"git pull origin main",
			"git checkout -b feature/login",
			"git commit --allow-empty --message Starting work on feature/login (Issue #42)",
		}, f.runner.MutatingCommands())
	})

	t.Run("asks until the name is valid and new", func(t *testing.T) {
		f := newFixture(t).onBranch("main", []string{"main", "taken"}, []string{"origin/main", "origin/remote-taken"})
		f.runner.Fail("git check-ref-format --branch bad..name", "fatal: 'bad..name' is not a valid branch name")
		f.prompter.Inputs = []string{"bad..name", "remote-taken", "fresh"}

		branch, err := actions.StartAction(f.ctx, actions.StartOptions{Branch: "taken"})
		require.NoError(t, err)
		require.Equal(t, "fresh", branch)
		require.Len(t, f.prompter.Questions, 3)
		require.Equal(t, []string{
			"git checkout main",
			"git pull origin main",
			"git checkout -b fresh",
		}, f.runner.MutatingCommands())
	})

	t.Run("suggests a sanitized name", func(t *testing.T) {
		f := newFixture(t).onBranch("main", []string{"main"}, []string{"origin/main"})
		f.runner.Fail("git check-ref-format --branch my new feature", "fatal: not a valid branch name")
		f.prompter.Inputs = []string{"my-new-feature"}

		branch, err := actions.StartAction(f.ctx, actions.StartOptions{Branch: "my new feature"})
		require.NoError(t, err)
		require.Equal(t, "my-new-feature", branch)
		require.Equal(t, []string{"my-new-feature"}, f.prompter.Defaults)
	})
}
