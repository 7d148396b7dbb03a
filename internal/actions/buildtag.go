package actions

import (
	"strings"

	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/git"
	"gitx.dev/gitx/internal/runtime"
)

// BuildTagOptions contains options for the buildtag command
type BuildTagOptions struct {
	// Branch whose build is tagged. Defaults to the current branch.
	Branch string
	// Message annotates the tag
	Message string
}

// BuildTagAction tags HEAD as a known good build of a taggable branch and
// pushes the tag
func BuildTagAction(ctx *runtime.Context, opts BuildTagOptions) (string, error) {
	g := ctx.Git

	branch := opts.Branch
	if branch == "" {
		current, err := g.CurrentBranch(ctx.Context)
		if err != nil {
			return "", err
		}
		branch = current
	}
	if !ctx.Config.IsTaggable(branch) {
		return "", gitxerrors.NewConfigurationError(branch,
			"Branch must be one of the supported taggable branches: %s", strings.Join(ctx.Config.TaggableBranches, ", "))
	}

	tag := git.BuildTagName(branch, ctx.Now())
	message := opts.Message
	if message == "" {
		message = "[gitx] buildtag for " + branch
	}

	if err := g.Tag(ctx.Context, tag, message); err != nil {
		return "", err
	}
	if err := g.Push(ctx.Context, tag); err != nil {
		return "", err
	}
	ctx.Splog.Info("Created build tag %s", tag)
	return tag, nil
}
