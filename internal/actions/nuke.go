package actions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/git"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
)

// NukeOptions contains options for the nuke command
type NukeOptions struct {
	// Branch is the aggregate branch to reset
	Branch string
	// Destination is the branch whose last build tag Branch is reset to.
	// Asked for when empty.
	Destination string
}

// NukeAction resets an aggregate branch to the last known good build tag,
// locally and on the remote
func NukeAction(ctx *runtime.Context, opts NukeOptions) (Outcome, error) {
	g := ctx.Git
	branch := opts.Branch

	if !ctx.Config.IsAggregate(branch) {
		return Completed, gitxerrors.NewConfigurationError(branch,
			"Only aggregate branches are allowed to be reset: %s", strings.Join(ctx.Config.AggregateBranches, ", "))
	}

	destination := opts.Destination
	if destination == "" {
		answer, err := ctx.Prompter.Input(fmt.Sprintf("What branch do you want to reset %s to?", branch), branch)
		if err != nil {
			return Completed, err
		}
		destination = strings.TrimSpace(answer)
		if destination == "" {
			destination = branch
		}
	}

	names, err := g.BuildTags(ctx.Context, destination)
	if err != nil {
		return Completed, err
	}
	tag, ok := git.LatestBuildTag(names, destination)
	if !ok {
		return Completed, gitxerrors.NewNotFoundError(destination, "No known good tag found for branch %s", destination)
	}

	confirmed, err := ctx.Prompter.Confirm(fmt.Sprintf("Reset %s to %s?", branch, tag.Name), false)
	if err != nil {
		return Completed, err
	}
	if !confirmed {
		return Declined, nil
	}

	pending, err := pendingMigrations(ctx, tag.Name, branch)
	if err != nil {
		return Completed, err
	}
	if len(pending) > 0 {
		ctx.Splog.Warn("Detected migrations that may need to be rolled back:")
		for i := len(pending) - 1; i >= 0; i-- {
			ctx.Splog.Info("  %s", pending[i])
		}
		proceed, err := ctx.Prompter.Confirm("Are you sure you want to nuke these migrations?", false)
		if err != nil {
			return Completed, err
		}
		if !proceed {
			return Declined, nil
		}
	}

	ctx.Splog.Info("Resetting %s to %s", tui.ColorBranchName(branch), tag.Name)
	base := ctx.Config.BaseBranch
	if err := g.Checkout(ctx.Context, base); err != nil {
		return Completed, err
	}
	if err := g.DeleteBranch(ctx.Context, branch, true, true); err != nil {
		return Completed, err
	}
	if err := g.DeleteRemoteBranch(ctx.Context, branch, true); err != nil {
		return Completed, err
	}
	if err := g.CheckoutNew(ctx.Context, branch, tag.Name); err != nil {
		return Completed, err
	}
	if err := g.Push(ctx.Context, branch); err != nil {
		return Completed, err
	}
	if err := g.SetUpstream(ctx.Context, branch); err != nil {
		return Completed, err
	}
	if err := g.Checkout(ctx.Context, base); err != nil {
		return Completed, err
	}
	return Completed, nil
}

// pendingMigrations lists migration files changed between tag and branch.
// Repositories without a migrations directory have none.
func pendingMigrations(ctx *runtime.Context, tag, branch string) ([]string, error) {
	dir := ctx.Config.MigrationsDir
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(filepath.Join(ctx.RepoRoot, dir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check migrations directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil
	}
	return ctx.Git.DiffNames(ctx.Context, tag+"..."+branch, dir)
}
