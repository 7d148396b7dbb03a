package actions

import (
	"fmt"
	"strings"

	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/github"
	"gitx.dev/gitx/internal/runtime"
)

// ReviewOptions contains options for the review command
type ReviewOptions struct {
	// Branch under review. Defaults to the current branch.
	Branch  string
	Approve bool
	Reject  bool
	Bump    bool
	// Message is the review comment. Approve and reject open the editor when empty.
	Message string
}

// ReviewAction opens or finds the review record for a branch and optionally
// records a review decision on it
func ReviewAction(ctx *runtime.Context, opts ReviewOptions) (*github.PullRequest, error) {
	if countTrue(opts.Approve, opts.Reject, opts.Bump) > 1 {
		return nil, fmt.Errorf("only one of --approve, --reject and --bump may be given")
	}

	g := ctx.Git
	current, err := g.CurrentBranch(ctx.Context)
	if err != nil {
		return nil, err
	}
	branch := opts.Branch
	if branch == "" {
		branch = current
	}
	if ctx.Config.IsReserved(branch) {
		return nil, gitxerrors.NewConfigurationError(branch, "Cannot create pull request for reserved branch %s", branch)
	}

	if branch != current {
		if err := g.Checkout(ctx.Context, branch); err != nil {
			return nil, err
		}
	}
	if err := updateBranch(ctx, branch); err != nil {
		return nil, err
	}

	pr, err := findOrCreateReview(ctx, branch)
	if err != nil {
		return nil, err
	}
	ctx.Splog.Info("Pull request: %s", pr.HTMLURL)

	switch {
	case opts.Approve:
		err = recordReview(ctx, pr, opts.Message, "[gitx] review approved :white_check_mark:", github.StatusSuccess, "approved by %s")
	case opts.Reject:
		err = recordReview(ctx, pr, opts.Message, "[gitx] review rejected", github.StatusFailure, "changes requested by %s")
	case opts.Bump:
		err = bumpReview(ctx, pr, opts.Message)
	}
	if err != nil {
		return nil, err
	}
	return pr, nil
}

func recordReview(ctx *runtime.Context, pr *github.PullRequest, message, heading string, state github.Status, descriptionFormat string) error {
	client, err := ctx.ReviewClient()
	if err != nil {
		return err
	}

	if message == "" && ctx.Editor != nil {
		edited, err := ctx.Editor.Edit("", "gitx-review-*.md")
		if err != nil {
			return err
		}
		message = stripComments(edited)
	}
	if err := client.AddComment(ctx.Context, pr, joinComment(heading, message)); err != nil {
		return err
	}

	user, err := client.CurrentUser(ctx.Context)
	if err != nil {
		return err
	}
	return client.UpdateReviewStatus(ctx.Context, pr, state, fmt.Sprintf(descriptionFormat, user))
}

func bumpReview(ctx *runtime.Context, pr *github.PullRequest, message string) error {
	client, err := ctx.ReviewClient()
	if err != nil {
		return err
	}
	if err := client.AddComment(ctx.Context, pr, joinComment("[gitx] review bump :tada:", message)); err != nil {
		return err
	}
	return client.UpdateReviewStatus(ctx.Context, pr, github.StatusPending, "Peer review in progress")
}

func joinComment(heading, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return heading
	}
	return heading + "\n\n" + message
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
