package actions

import (
	"fmt"
	"strings"

	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
	"gitx.dev/gitx/internal/utils"
)

// StartOptions contains options for the start command
type StartOptions struct {
	// Branch is the new branch name. Asked for until valid when empty or invalid.
	Branch string
	// Issue links the first commit to an issue number
	Issue string
}

// StartAction creates a new feature branch from the latest base branch
func StartAction(ctx *runtime.Context, opts StartOptions) (string, error) {
	g := ctx.Git
	branch := strings.TrimSpace(opts.Branch)

	for {
		valid, err := isNewBranchName(ctx, branch)
		if err != nil {
			return "", err
		}
		if valid {
			break
		}
		suggestion := ""
		if branch != "" {
			ctx.Splog.Warn("%s is not a valid new branch name", branch)
			if s := utils.SanitizeBranchName(branch); s != branch {
				suggestion = s
			}
		}
		answer, err := ctx.Prompter.Input("What would you like to name your branch? (ex: feature/my-new-feature)", suggestion)
		if err != nil {
			return "", err
		}
		branch = strings.TrimSpace(answer)
	}

	base := ctx.Config.BaseBranch
	if err := g.Checkout(ctx.Context, base); err != nil {
		return "", err
	}
	if err := g.Pull(ctx.Context, base); err != nil {
		return "", err
	}
	if err := g.CheckoutNew(ctx.Context, branch, ""); err != nil {
		return "", err
	}
	if opts.Issue != "" {
		message := fmt.Sprintf("Starting work on %s (Issue #%s)", branch, strings.TrimPrefix(opts.Issue, "#"))
		if err := g.CommitEmpty(ctx.Context, message); err != nil {
			return "", err
		}
	}

	ctx.Splog.Info("Started %s from %s", tui.ColorBranchName(branch), tui.ColorBranchName(base))
	return branch, nil
}

// isNewBranchName reports whether name is a valid ref name that exists
// neither locally nor on the remote
func isNewBranchName(ctx *runtime.Context, name string) (bool, error) {
	if name == "" || !ctx.Git.IsValidBranchName(ctx.Context, name) {
		return false, nil
	}
	local, err := ctx.Git.LocalBranchExists(ctx.Context, name)
	if err != nil || local {
		return false, err
	}
	remote, err := ctx.Git.RemoteBranchExists(ctx.Context, name)
	if err != nil || remote {
		return false, err
	}
	return true, nil
}
