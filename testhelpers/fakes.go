package testhelpers

import (
	"context"
	"fmt"

	"gitx.dev/gitx/internal/github"
)

// FakePrompter answers prompts from queued responses and records every question.
// A prompt with nothing queued fails the call.
type FakePrompter struct {
	Confirms  []bool
	Inputs    []string
	Questions []string
	// Defaults records the default offered with each input prompt
	Defaults []string
}

// Confirm implements runtime.Prompter
func (p *FakePrompter) Confirm(message string, _ bool) (bool, error) {
	p.Questions = append(p.Questions, message)
	if len(p.Confirms) == 0 {
		return false, fmt.Errorf("unexpected confirmation: %s", message)
	}
	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return answer, nil
}

// Input implements runtime.Prompter
func (p *FakePrompter) Input(message, defaultValue string) (string, error) {
	p.Questions = append(p.Questions, message)
	p.Defaults = append(p.Defaults, defaultValue)
	if len(p.Inputs) == 0 {
		return "", fmt.Errorf("unexpected input prompt: %s", message)
	}
	answer := p.Inputs[0]
	p.Inputs = p.Inputs[1:]
	return answer, nil
}

// FakeEditor returns Content (or the initial content when Content is empty)
type FakeEditor struct {
	Content string
	Opened  []string
}

// Edit implements runtime.Editor
func (e *FakeEditor) Edit(initialContent, _ string) (string, error) {
	e.Opened = append(e.Opened, initialContent)
	if e.Content == "" {
		return initialContent, nil
	}
	return e.Content, nil
}

// Comment is a comment posted through FakeReviewHost
type Comment struct {
	Number int
	Body   string
}

// ReviewStatus is a review status set through FakeReviewHost
type ReviewStatus struct {
	Number      int
	State       github.Status
	Description string
}

// FakeReviewHost is an in-memory github.Client
type FakeReviewHost struct {
	PRs            map[string]*github.PullRequest
	Bodies         map[string]string
	Created        []string
	Statuses       map[string]github.Status
	Comments       []Comment
	ReviewStatuses []ReviewStatus
	Login          string
}

var _ github.Client = (*FakeReviewHost)(nil)

// NewFakeReviewHost creates an empty FakeReviewHost whose branches report success
func NewFakeReviewHost() *FakeReviewHost {
	return &FakeReviewHost{
		PRs:      make(map[string]*github.PullRequest),
		Bodies:   make(map[string]string),
		Statuses: make(map[string]github.Status),
		Login:    "reviewer",
	}
}

// FindOrCreatePullRequest implements github.Client
func (h *FakeReviewHost) FindOrCreatePullRequest(_ context.Context, req github.PullRequestRequest) (*github.PullRequest, error) {
	if pr, ok := h.PRs[req.Head]; ok {
		return pr, nil
	}
	body := ""
	if req.Describe != nil {
		var err error
		if body, err = req.Describe(); err != nil {
			return nil, err
		}
	}
	number := len(h.PRs) + 1
	pr := &github.PullRequest{
		Number:  number,
		HTMLURL: fmt.Sprintf("https://github.com/owner/repo/pull/%d", number),
		HeadSHA: "sha-" + req.Head,
		Head:    req.Head,
		Base:    req.Base,
		Title:   req.Head,
	}
	h.PRs[req.Head] = pr
	h.Bodies[req.Head] = body
	h.Created = append(h.Created, req.Head)
	return pr, nil
}

// BranchStatus implements github.Client
func (h *FakeReviewHost) BranchStatus(_ context.Context, branch string) (github.Status, error) {
	if status, ok := h.Statuses[branch]; ok {
		return status, nil
	}
	return github.StatusSuccess, nil
}

// AddComment implements github.Client
func (h *FakeReviewHost) AddComment(_ context.Context, pr *github.PullRequest, body string) error {
	h.Comments = append(h.Comments, Comment{Number: pr.Number, Body: body})
	return nil
}

// UpdateReviewStatus implements github.Client
func (h *FakeReviewHost) UpdateReviewStatus(_ context.Context, pr *github.PullRequest, state github.Status, description string) error {
	h.ReviewStatuses = append(h.ReviewStatuses, ReviewStatus{Number: pr.Number, State: state, Description: description})
	return nil
}

// CurrentUser implements github.Client
func (h *FakeReviewHost) CurrentUser(_ context.Context) (string, error) {
	return h.Login, nil
}
