package actions

import (
	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
)

const updateRecovery = "gitx update"

// UpdateAction brings the current branch up to date with its remote and the
// base branch, then publishes it
func UpdateAction(ctx *runtime.Context) error {
	branch, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return err
	}
	return updateBranch(ctx, branch)
}

// updateBranch runs the update sequence on branch, which must be checked out
func updateBranch(ctx *runtime.Context, branch string) error {
	base := ctx.Config.BaseBranch
	ctx.Splog.Info("Updating %s with latest changes from %s", tui.ColorBranchName(branch), tui.ColorBranchName(base))

	onRemote, err := ctx.Git.RemoteBranchExists(ctx.Context, branch)
	if err != nil {
		return err
	}
	if onRemote {
		if err := ctx.Git.Pull(ctx.Context, branch); err != nil {
			return gitxerrors.NewMergeConflictError(updateRecovery, err)
		}
	}
	if err := ctx.Git.Pull(ctx.Context, base); err != nil {
		return gitxerrors.NewMergeConflictError(updateRecovery, err)
	}
	return ctx.Git.Push(ctx.Context, "HEAD")
}
