package actions_test

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitx.dev/gitx/internal/config"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
	"gitx.dev/gitx/testhelpers"
)

type fixture struct {
	ctx      *runtime.Context
	runner   *testhelpers.FakeRunner
	prompter *testhelpers.FakePrompter
	host     *testhelpers.FakeReviewHost
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, config.Defaults())
}

func newFixtureWithConfig(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	splog, err := tui.NewSplogWithConfig(io.Discard, "")
	require.NoError(t, err)

	runner := testhelpers.NewFakeRunner()
	prompter := &testhelpers.FakePrompter{}
	host := testhelpers.NewFakeReviewHost()

	ctx := runtime.NewContext(runner, cfg, splog, prompter, nil, t.TempDir())
	ctx.SetReviewClient(host)
	ctx.Now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	return &fixture{ctx: ctx, runner: runner, prompter: prompter, host: host}
}

// onBranch scripts the current branch and the local and remote listings
func (f *fixture) onBranch(current string, local []string, remote []string) *fixture {
	f.runner.On(testhelpers.CurrentBranchCmd, current)
	f.runner.On(testhelpers.LocalBranchesCmd, testhelpers.Names(local...))
	f.runner.On(testhelpers.RemoteBranchesCmd, testhelpers.Names(remote...))
	return f
}
