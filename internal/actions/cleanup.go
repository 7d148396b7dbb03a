package actions

import (
	"gitx.dev/gitx/internal/git"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
)

// CleanupAction deletes local and remote branches that are fully merged into
// the updated base branch. Reserved and aggregate branches are never deleted.
func CleanupAction(ctx *runtime.Context) error {
	g := ctx.Git
	base := ctx.Config.BaseBranch

	if err := g.Checkout(ctx.Context, base); err != nil {
		return err
	}
	if err := g.Pull(ctx.Context, base); err != nil {
		return err
	}
	if err := g.PruneRemote(ctx.Context); err != nil {
		return err
	}
	reference, err := g.RevParse(ctx.Context, "HEAD")
	if err != nil {
		return err
	}

	ctx.Splog.Info("Deleting remote branches...")
	remoteMerged, err := MergedBranches(ctx, git.Remote, reference)
	if err != nil {
		return err
	}
	for _, branch := range remoteMerged {
		if err := g.DeleteRemoteBranch(ctx.Context, branch, false); err != nil {
			return err
		}
		ctx.Splog.Info("  %s", tui.ColorDim(g.RemoteRef(branch)))
	}

	ctx.Splog.Info("Deleting local branches...")
	localMerged, err := MergedBranches(ctx, git.Local, reference)
	if err != nil {
		return err
	}
	for _, branch := range localMerged {
		if err := g.DeleteBranch(ctx.Context, branch, false, false); err != nil {
			return err
		}
		ctx.Splog.Info("  %s", tui.ColorDim(branch))
	}
	return nil
}
