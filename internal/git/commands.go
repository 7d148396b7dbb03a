package git

import (
	"context"
	"fmt"
	"strings"
)

// DefaultRemote is the remote used when none is configured
const DefaultRemote = "origin"

// Git builds git argument vectors and runs them through a Runner.
// Mutating commands are traced; read-only queries are not.
type Git struct {
	runner Runner
	remote string
}

// New creates a Git bound to runner and remote
func New(runner Runner, remote string) *Git {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Git{runner: runner, remote: remote}
}

// Remote returns the remote name
func (g *Git) Remote() string {
	return g.remote
}

// RemoteRef returns the remote-tracking name of branch, e.g. origin/feature
func (g *Git) RemoteRef(branch string) string {
	return g.remote + "/" + branch
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	return g.runner.Run(ctx, RunOptions{Trace: true}, "git", args...)
}

func (g *Git) tolerate(ctx context.Context, args ...string) (string, error) {
	return g.runner.Run(ctx, RunOptions{Trace: true, AllowFailure: true}, "git", args...)
}

func (g *Git) query(ctx context.Context, args ...string) (string, error) {
	return g.runner.Run(ctx, RunOptions{}, "git", args...)
}

// CurrentBranch returns the checked out branch name
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	name, err := g.query(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to determine current branch: %w", err)
	}
	if name == "HEAD" || name == "" {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return name, nil
}

// RevParse resolves rev to a commit id
func (g *Git) RevParse(ctx context.Context, rev string) (string, error) {
	return g.query(ctx, "rev-parse", rev)
}

// Checkout checks out an existing branch
func (g *Git) Checkout(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "checkout", branch)
	return err
}

// CheckoutNew creates branch at start and checks it out
func (g *Git) CheckoutNew(ctx context.Context, branch, start string) error {
	args := []string{"checkout", "-b", branch}
	if start != "" {
		args = append(args, start)
	}
	_, err := g.run(ctx, args...)
	return err
}

// Pull pulls branch from the remote into the current branch
func (g *Git) Pull(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "pull", g.remote, branch)
	return err
}

// Push pushes refspec (a branch, tag, HEAD or src:dst) to the remote
func (g *Git) Push(ctx context.Context, refspec string) error {
	_, err := g.run(ctx, "push", g.remote, refspec)
	return err
}

// DeleteRemoteBranch deletes branch on the remote
func (g *Git) DeleteRemoteBranch(ctx context.Context, branch string, allowFailure bool) error {
	args := []string{"push", g.remote, "--delete", branch}
	if allowFailure {
		_, err := g.tolerate(ctx, args...)
		return err
	}
	_, err := g.run(ctx, args...)
	return err
}

// CreateBranch creates branch at start without checking it out
func (g *Git) CreateBranch(ctx context.Context, branch, start string) error {
	_, err := g.run(ctx, "branch", branch, start)
	return err
}

// DeleteBranch deletes a local branch. force uses --force so unmerged
// branches are removed too; allowFailure tolerates a missing branch.
func (g *Git) DeleteBranch(ctx context.Context, branch string, force, allowFailure bool) error {
	args := []string{"branch", "--delete"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, branch)
	if allowFailure {
		_, err := g.tolerate(ctx, args...)
		return err
	}
	_, err := g.run(ctx, args...)
	return err
}

// SetUpstream makes the remote branch of the same name the upstream of branch
func (g *Git) SetUpstream(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "branch", "--set-upstream-to", g.RemoteRef(branch), branch)
	return err
}

// Fetch fetches from the remote with extra args (e.g. --tags)
func (g *Git) Fetch(ctx context.Context, args ...string) error {
	fetchArgs := []string{"fetch"}
	if len(args) == 0 {
		fetchArgs = append(fetchArgs, g.remote)
	}
	fetchArgs = append(fetchArgs, args...)
	_, err := g.run(ctx, fetchArgs...)
	return err
}

// MergeNoFF merges branch into the current branch with a merge commit
func (g *Git) MergeNoFF(ctx context.Context, message, branch string) error {
	_, err := g.run(ctx, "merge", "--no-ff", "--message", message, branch)
	return err
}

// MergeBase returns the best common ancestor of a and b, or "" when there is none
func (g *Git) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := g.runner.Run(ctx, RunOptions{AllowFailure: true}, "git", "merge-base", a, b)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Tag creates an annotated tag on HEAD
func (g *Git) Tag(ctx context.Context, name, message string) error {
	_, err := g.run(ctx, "tag", name, "--annotate", "--message", message)
	return err
}

// ListTags returns tag names matching pattern
func (g *Git) ListTags(ctx context.Context, pattern string) ([]string, error) {
	out, err := g.query(ctx, "tag", "--list", pattern)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Log returns the log for revRange rendered with a pretty format, oldest first
func (g *Git) Log(ctx context.Context, revRange, format string) (string, error) {
	return g.query(ctx, "log", "--reverse", "--no-merges", "--pretty=format:"+format, revRange)
}

// DiffNames lists file names changed in revRange under path
func (g *Git) DiffNames(ctx context.Context, revRange, path string) ([]string, error) {
	out, err := g.query(ctx, "diff", revRange, "--name-only", path)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// PruneRemote prunes stale remote-tracking branches
func (g *Git) PruneRemote(ctx context.Context) error {
	_, err := g.run(ctx, "remote", "prune", g.remote)
	return err
}

// CommitEmpty records an empty commit with message
func (g *Git) CommitEmpty(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "--allow-empty", "--message", message)
	return err
}

// IsValidBranchName reports whether name is an acceptable branch name
func (g *Git) IsValidBranchName(ctx context.Context, name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	_, err := g.query(ctx, "check-ref-format", "--branch", name)
	return err == nil
}

// ConfigValue reads a git config key, returning "" when unset
func (g *Git) ConfigValue(ctx context.Context, key string) string {
	out, _ := g.runner.Run(ctx, RunOptions{AllowFailure: true}, "git", "config", "--get", key)
	return out
}

func splitLines(out string) []string {
	if strings.TrimSpace(out) == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
