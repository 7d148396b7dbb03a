// Package github provides a client for interacting with the GitHub API.
package github

import "context"

// Status is the state of a commit status on the review host
type Status string

const (
	// StatusPending means checks are still running or review is in progress
	StatusPending Status = "pending"
	// StatusSuccess means every check passed
	StatusSuccess Status = "success"
	// StatusFailure means at least one check failed or errored
	StatusFailure Status = "failure"
)

// ReviewContext is the commit status context used for review signals
const ReviewContext = "review/gitx"

// PullRequest is the review record for a branch.
// This is a simplified struct to avoid coupling to go-github library
type PullRequest struct {
	Number  int
	HTMLURL string
	HeadSHA string
	Head    string
	Base    string
	Title   string
}

// PullRequestRequest describes the review record to find or create
type PullRequestRequest struct {
	Head  string
	Base  string
	Title string
	// Describe produces the body. It is only called when a new record is created.
	Describe func() (string, error)
}

// Client is an interface for GitHub API interactions
type Client interface {
	// FindOrCreatePullRequest returns the open pull request for req.Head,
	// creating one against req.Base when none exists
	FindOrCreatePullRequest(ctx context.Context, req PullRequestRequest) (*PullRequest, error)

	// BranchStatus returns the combined build status of a branch
	BranchStatus(ctx context.Context, branch string) (Status, error)

	// AddComment adds a comment to the pull request conversation
	AddComment(ctx context.Context, pr *PullRequest, body string) error

	// UpdateReviewStatus records a review signal as a commit status on the pull request head
	UpdateReviewStatus(ctx context.Context, pr *PullRequest, state Status, description string) error

	// CurrentUser returns the login of the authenticated user
	CurrentUser(ctx context.Context) (string, error)
}
