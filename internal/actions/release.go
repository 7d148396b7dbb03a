package actions

import (
	"fmt"

	"github.com/kballard/go-shellquote"

	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/git"
	"gitx.dev/gitx/internal/github"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
)

// ReleaseOptions contains options for the release command
type ReleaseOptions struct {
	// Branch to release. Defaults to the current branch.
	Branch string
	// Integrate merges the base branch into the default aggregate afterwards
	Integrate bool
	// Cleanup removes merged branches afterwards
	Cleanup bool
}

// ReleaseAction merges a feature branch into the base branch after
// confirmation and a build status check
func ReleaseAction(ctx *runtime.Context, opts ReleaseOptions) (Outcome, error) {
	g := ctx.Git
	base := ctx.Config.BaseBranch

	branch := opts.Branch
	if branch == "" {
		current, err := g.CurrentBranch(ctx.Context)
		if err != nil {
			return Completed, err
		}
		branch = current
	}
	if ctx.Config.IsReserved(branch) {
		return Completed, gitxerrors.NewConfigurationError(branch, "Cannot release reserved branch %s", branch)
	}

	ok, err := ctx.Prompter.Confirm(fmt.Sprintf("Release %s to %s?", branch, base), false)
	if err != nil {
		return Completed, err
	}
	if !ok {
		return Declined, nil
	}

	if err := g.Checkout(ctx.Context, branch); err != nil {
		return Completed, err
	}
	if err := updateBranch(ctx, branch); err != nil {
		return Completed, err
	}

	review, err := findOrCreateReview(ctx, branch)
	if err != nil {
		return Completed, err
	}
	client, err := ctx.ReviewClient()
	if err != nil {
		return Completed, err
	}
	status, err := client.BranchStatus(ctx.Context, branch)
	if err != nil {
		return Completed, err
	}
	if status != github.StatusSuccess {
		ctx.Splog.Warn("Branch status is currently: %s", tui.ColorYellow(string(status)))
		proceed, err := ctx.Prompter.Confirm("Proceed with release?", false)
		if err != nil {
			return Completed, err
		}
		if !proceed {
			return Declined, nil
		}
	}

	if err := g.Checkout(ctx.Context, base); err != nil {
		return Completed, err
	}
	recovery := "gitx release " + branch
	if err := g.Pull(ctx.Context, base); err != nil {
		return Completed, gitxerrors.NewMergeConflictError(recovery, err)
	}
	message := connectedTo(fmt.Sprintf("[gitx] Release %s to %s", branch, base), review)
	if err := g.MergeNoFF(ctx.Context, message, branch); err != nil {
		return Completed, gitxerrors.NewMergeConflictError(recovery, err)
	}
	if err := g.Push(ctx.Context, "HEAD"); err != nil {
		return Completed, err
	}
	ctx.Splog.Info("Released %s to %s", tui.ColorBranchName(branch), tui.ColorBranchName(base))

	if err := runAfterRelease(ctx); err != nil {
		return Completed, err
	}

	if opts.Integrate {
		if aggregate := ctx.Config.DefaultAggregate(); aggregate != "" {
			if err := IntegrateAction(ctx, IntegrateOptions{Feature: base, Target: aggregate}); err != nil {
				return Completed, err
			}
		}
	}

	if opts.Cleanup {
		if err := CleanupAction(ctx); err != nil {
			return Completed, err
		}
	}
	return Completed, nil
}

// runAfterRelease runs the configured after_release commands through the runner
func runAfterRelease(ctx *runtime.Context) error {
	for _, command := range ctx.Config.AfterRelease {
		argv, err := shellquote.Split(command)
		if err != nil {
			return fmt.Errorf("invalid after_release command %q: %w", command, err)
		}
		if len(argv) == 0 {
			continue
		}
		if _, err := ctx.Runner.Run(ctx.Context, git.RunOptions{Trace: true}, argv[0], argv[1:]...); err != nil {
			return err
		}
	}
	return nil
}
