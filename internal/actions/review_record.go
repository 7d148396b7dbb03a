package actions

import (
	"strings"

	"gitx.dev/gitx/internal/github"
	"gitx.dev/gitx/internal/runtime"
)

const changelogFormat = "* %s%n%b"

// findOrCreateReview returns the review record for branch, opening one
// against the base branch when none exists
func findOrCreateReview(ctx *runtime.Context, branch string) (*github.PullRequest, error) {
	client, err := ctx.ReviewClient()
	if err != nil {
		return nil, err
	}

	pr, err := client.FindOrCreatePullRequest(ctx.Context, github.PullRequestRequest{
		Head:     branch,
		Base:     ctx.Config.BaseBranch,
		Title:    branch,
		Describe: func() (string, error) { return describeBranch(ctx, branch) },
	})
	if err != nil {
		return nil, err
	}
	ctx.Splog.Debug("Pull request for %s: %s", branch, pr.HTMLURL)
	return pr, nil
}

// describeBranch drafts a pull request body from the commits on branch that
// are not on the remote base, and lets the user edit it
func describeBranch(ctx *runtime.Context, branch string) (string, error) {
	revRange := ctx.Git.RemoteRef(ctx.Config.BaseBranch) + "..." + branch
	changelog, err := ctx.Git.Log(ctx.Context, revRange, changelogFormat)
	if err != nil {
		return "", err
	}
	if ctx.Editor == nil {
		return changelog, nil
	}

	draft := changelog + "\n\n# Describe the changes in " + branch + ". Lines starting with '#' are ignored.\n"
	edited, err := ctx.Editor.Edit(draft, "gitx-pull-request-*.md")
	if err != nil {
		return "", err
	}
	return stripComments(edited), nil
}

func stripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// connectedTo appends the review link footer to a merge message
func connectedTo(message string, pr *github.PullRequest) string {
	if pr == nil || pr.HTMLURL == "" {
		return message
	}
	return message + "\n\nConnected to " + pr.HTMLURL
}
