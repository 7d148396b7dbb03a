package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// RESTClient implements Client using the GitHub REST API
type RESTClient struct {
	client  *github.Client
	owner   string
	repo    string
	backOff func() backoff.BackOff
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient creates a client for the repository described by info
func NewRESTClient(ctx context.Context, info *RepoInfo, token string) (*RESTClient, error) {
	client, err := createGitHubClient(ctx, info.Hostname, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return NewRESTClientWith(client, info.Owner, info.Repo), nil
}

// NewRESTClientWith wraps an already configured go-github client
func NewRESTClientWith(client *github.Client, owner, repo string) *RESTClient {
	return &RESTClient{
		client:  client,
		owner:   owner,
		repo:    repo,
		backOff: defaultBackOff,
	}
}

// SetBackOff replaces the retry policy for transient API failures
func (c *RESTClient) SetBackOff(newBackOff func() backoff.BackOff) {
	c.backOff = newBackOff
}

// createGitHubClient creates a GitHub client configured for the given hostname
// Supports both github.com and GitHub Enterprise instances
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if hostname != "github.com" {
		// REST API: https://hostname/api/v3/
		// Upload API: https://hostname/api/uploads/
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}

		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return client, nil
}

func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	return backoff.WithMaxRetries(bo, 4)
}

// retry runs op, retrying server errors and rate limits
func (c *RESTClient) retry(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(c.backOff(), ctx))
}

func isTransient(err error) bool {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// FindOrCreatePullRequest returns the open pull request for req.Head or creates one
func (c *RESTClient) FindOrCreatePullRequest(ctx context.Context, req PullRequestRequest) (*PullRequest, error) {
	existing, err := c.findPullRequest(ctx, req.Head)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	body := ""
	if req.Describe != nil {
		body, err = req.Describe()
		if err != nil {
			return nil, err
		}
	}
	title := req.Title
	if title == "" {
		title = req.Head
	}

	newPR := &github.NewPullRequest{
		Title: github.String(title),
		Head:  github.String(req.Head),
		Base:  github.String(req.Base),
	}
	if body != "" {
		newPR.Body = github.String(body)
	}

	var created *github.PullRequest
	err = c.retry(ctx, func() error {
		var err error
		created, _, err = c.client.PullRequests.Create(ctx, c.owner, c.repo, newPR)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	return toPullRequest(created), nil
}

func (c *RESTClient) findPullRequest(ctx context.Context, branch string) (*PullRequest, error) {
	var prs []*github.PullRequest
	err := c.retry(ctx, func() error {
		var err error
		prs, _, err = c.client.PullRequests.List(ctx, c.owner, c.repo, &github.PullRequestListOptions{
			Head:  fmt.Sprintf("%s:%s", c.owner, branch),
			State: "open",
			ListOptions: github.ListOptions{
				PerPage: 1,
			},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return toPullRequest(prs[0]), nil
}

// BranchStatus returns the combined commit status of branch
func (c *RESTClient) BranchStatus(ctx context.Context, branch string) (Status, error) {
	var combined *github.CombinedStatus
	err := c.retry(ctx, func() error {
		var err error
		combined, _, err = c.client.Repositories.GetCombinedStatus(ctx, c.owner, c.repo, branch, nil)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to get status for %s: %w", branch, err)
	}

	switch combined.GetState() {
	case "success":
		return StatusSuccess, nil
	case "pending":
		return StatusPending, nil
	default:
		return StatusFailure, nil
	}
}

// AddComment adds a comment to the pull request conversation
func (c *RESTClient) AddComment(ctx context.Context, pr *PullRequest, body string) error {
	err := c.retry(ctx, func() error {
		_, _, err := c.client.Issues.CreateComment(ctx, c.owner, c.repo, pr.Number, &github.IssueComment{
			Body: github.String(body),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to comment on pull request #%d: %w", pr.Number, err)
	}
	return nil
}

// UpdateReviewStatus sets the review commit status on the pull request head
func (c *RESTClient) UpdateReviewStatus(ctx context.Context, pr *PullRequest, state Status, description string) error {
	ref := pr.HeadSHA
	if ref == "" {
		ref = pr.Head
	}
	status := &github.RepoStatus{
		State:       github.String(string(state)),
		Description: github.String(description),
		Context:     github.String(ReviewContext),
	}
	if pr.HTMLURL != "" {
		status.TargetURL = github.String(pr.HTMLURL)
	}

	err := c.retry(ctx, func() error {
		_, _, err := c.client.Repositories.CreateStatus(ctx, c.owner, c.repo, ref, status)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update review status for pull request #%d: %w", pr.Number, err)
	}
	return nil
}

// CurrentUser returns the login of the authenticated user
func (c *RESTClient) CurrentUser(ctx context.Context) (string, error) {
	var user *github.User
	err := c.retry(ctx, func() error {
		var err error
		user, _, err = c.client.Users.Get(ctx, "")
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return user.GetLogin(), nil
}

func toPullRequest(pr *github.PullRequest) *PullRequest {
	if pr == nil {
		return nil
	}
	return &PullRequest{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
		HeadSHA: pr.GetHead().GetSHA(),
		Head:    pr.GetHead().GetRef(),
		Base:    pr.GetBase().GetRef(),
		Title:   pr.GetTitle(),
	}
}
