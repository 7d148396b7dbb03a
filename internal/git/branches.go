package git

import (
	"context"
	"fmt"
	"strings"
)

// Source selects which branch namespace to list
type Source int

const (
	// Local lists refs/heads
	Local Source = iota
	// Remote lists remote-tracking branches
	Remote
)

func (s Source) String() string {
	if s == Remote {
		return "remote"
	}
	return "local"
}

// Branch is a point-in-time view of a branch. It is read fresh from git on
// every query and never cached.
type Branch struct {
	Name     string
	Tip      string
	IsRemote bool
	IsHead   bool
}

// ShortName returns the branch name without its remote prefix
func (b Branch) ShortName() string {
	if !b.IsRemote {
		return b.Name
	}
	return ShortName(b.Name)
}

// ShortName strips exactly one leading "<remote>/" segment:
// origin/foo/bar becomes foo/bar. Names without a slash are returned as is.
func ShortName(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// branchFormat emits name, tip and head marker separated by tabs, which git
// forbids inside ref names.
const branchFormat = "--format=%(refname:short)%09%(objectname)%09%(HEAD)"

// ListBranches lists branches for source. Remote listings only include
// branches of the configured remote.
func (g *Git) ListBranches(ctx context.Context, source Source) ([]Branch, error) {
	args := []string{"branch", "--list"}
	if source == Remote {
		args = append(args, "--remotes")
	}
	args = append(args, branchFormat)

	out, err := g.query(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s branches: %w", source, err)
	}
	branches := parseBranches(out, source == Remote)
	if source != Remote {
		return branches, nil
	}
	own := branches[:0]
	for _, b := range branches {
		if strings.HasPrefix(b.Name, g.remote+"/") {
			own = append(own, b)
		}
	}
	return own, nil
}

func parseBranches(out string, remote bool) []Branch {
	var branches []Branch
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		// origin/HEAD is a symbolic ref; newer git prints it as just "origin"
		if remote && (strings.HasSuffix(name, "/HEAD") || !strings.Contains(name, "/")) {
			continue
		}
		b := Branch{Name: name, IsRemote: remote}
		if len(parts) > 1 {
			b.Tip = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			b.IsHead = strings.TrimSpace(parts[2]) == "*"
		}
		branches = append(branches, b)
	}
	return branches
}

// LocalBranchNames returns the names of all local branches
func (g *Git) LocalBranchNames(ctx context.Context) ([]string, error) {
	branches, err := g.ListBranches(ctx, Local)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	return names, nil
}

// LocalBranchExists reports whether branch exists locally
func (g *Git) LocalBranchExists(ctx context.Context, branch string) (bool, error) {
	branches, err := g.ListBranches(ctx, Local)
	if err != nil {
		return false, err
	}
	for _, b := range branches {
		if b.Name == branch {
			return true, nil
		}
	}
	return false, nil
}

// RemoteBranchExists reports whether <remote>/branch is in the remote branch list
func (g *Git) RemoteBranchExists(ctx context.Context, branch string) (bool, error) {
	branches, err := g.ListBranches(ctx, Remote)
	if err != nil {
		return false, err
	}
	want := g.RemoteRef(branch)
	for _, b := range branches {
		if b.Name == want {
			return true, nil
		}
	}
	return false, nil
}

// IsMergedInto reports whether tip is reachable from reference with no
// divergent commits, i.e. merge-base(reference, tip) == tip.
func (g *Git) IsMergedInto(ctx context.Context, reference, tip string) (bool, error) {
	base, err := g.MergeBase(ctx, reference, tip)
	if err != nil {
		return false, err
	}
	return base != "" && base == tip, nil
}
