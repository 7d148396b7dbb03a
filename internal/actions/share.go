package actions

import (
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
)

// ShareAction publishes the current branch and tracks the remote copy
func ShareAction(ctx *runtime.Context) error {
	branch, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return err
	}
	if err := ctx.Git.Push(ctx.Context, branch); err != nil {
		return err
	}
	if err := ctx.Git.SetUpstream(ctx.Context, branch); err != nil {
		return err
	}
	ctx.Splog.Info("Shared %s as %s", tui.ColorBranchName(branch), ctx.Git.RemoteRef(branch))
	return nil
}
