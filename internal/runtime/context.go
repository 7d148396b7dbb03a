package runtime

import (
	"context"
	"fmt"
	"time"

	"gitx.dev/gitx/internal/config"
	"gitx.dev/gitx/internal/git"
	"gitx.dev/gitx/internal/github"
	"gitx.dev/gitx/internal/tui"
)

// Prompter asks the user questions
type Prompter interface {
	Confirm(message string, defaultValue bool) (bool, error)
	Input(message, defaultValue string) (string, error)
}

// Editor lets the user write free-form text
type Editor interface {
	Edit(initialContent, filenamePattern string) (string, error)
}

// ReviewFactory builds the review-host client on first use
type ReviewFactory func(ctx context.Context) (github.Client, error)

// Context provides access to the repository and its collaborators for commands
type Context struct {
	Context  context.Context
	Git      *git.Git
	Runner   git.Runner
	Config   *config.Config
	Splog    *tui.Splog
	Prompter Prompter
	Editor   Editor
	RepoRoot string
	Now      func() time.Time

	review        github.Client
	reviewFactory ReviewFactory
}

// NewContext assembles a Context from explicit collaborators. The review-host
// client is attached separately with SetReviewClient or SetReviewFactory.
func NewContext(runner git.Runner, cfg *config.Config, splog *tui.Splog, prompter Prompter, editor Editor, repoRoot string) *Context {
	if splog == nil {
		splog = tui.NewSplog()
	}
	return &Context{
		Context:  context.Background(),
		Git:      git.New(runner, cfg.Remote),
		Runner:   runner,
		Config:   cfg,
		Splog:    splog,
		Prompter: prompter,
		Editor:   editor,
		RepoRoot: repoRoot,
		Now:      time.Now,
	}
}

// SetReviewClient sets the review-host client directly
func (c *Context) SetReviewClient(client github.Client) {
	c.review = client
}

// SetReviewFactory defers construction of the review-host client until a
// command needs it
func (c *Context) SetReviewFactory(factory ReviewFactory) {
	c.reviewFactory = factory
}

// ReviewClient returns the review-host client, building it on first use
func (c *Context) ReviewClient() (github.Client, error) {
	if c.review != nil {
		return c.review, nil
	}
	if c.reviewFactory == nil {
		return nil, fmt.Errorf("no review host configured")
	}
	client, err := c.reviewFactory(c.Context)
	if err != nil {
		return nil, err
	}
	c.review = client
	return client, nil
}

// GetContext discovers the repository containing dir and wires the real
// collaborators: a command runner rooted at the repo, .gitx.yml, terminal
// prompts and the GitHub client.
func GetContext(ctx context.Context, dir string, splog *tui.Splog) (*Context, error) {
	repoRoot, err := git.FindRepoRoot(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	if splog == nil {
		splog = tui.NewSplog()
	}
	runner := git.NewCommandRunner(repoRoot, splog.Line)
	runner.SetTracer(splog.Command)

	g := git.New(runner, cfg.Remote)
	editor := tui.NewEditor(func(key string) string {
		return g.ConfigValue(ctx, key)
	})

	c := NewContext(runner, cfg, splog, tui.NewPrompter(), editor, repoRoot)
	c.Context = ctx
	c.SetReviewFactory(func(ctx context.Context) (github.Client, error) {
		remoteURL, err := git.RemoteURL(repoRoot, cfg.Remote)
		if err != nil {
			return nil, err
		}
		info, err := github.ParseGitHubRemoteURL(remoteURL)
		if err != nil {
			return nil, fmt.Errorf("failed to get repository info: %w", err)
		}
		token, err := github.ResolveToken(ctx, runner)
		if err != nil {
			return nil, err
		}
		return github.NewRESTClient(ctx, info, token)
	})
	return c, nil
}
