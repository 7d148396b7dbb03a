package github

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gitx.dev/gitx/internal/git"
)

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo
// Supports both github.com and GitHub Enterprise URLs
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, "/")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")
	remoteURL = strings.TrimPrefix(remoteURL, "ssh://")

	var hostname, path string

	if at := strings.Index(remoteURL, "@"); at >= 0 && !strings.Contains(remoteURL[:at], "://") {
		// SSH format: git@hostname:owner/repo or git@hostname/owner/repo
		hostAndPath := remoteURL[at+1:]
		sep := strings.IndexAny(hostAndPath, ":/")
		if sep < 0 {
			return nil, fmt.Errorf("invalid SSH remote URL: missing path")
		}
		hostname = hostAndPath[:sep]
		path = hostAndPath[sep+1:]
	} else {
		// HTTPS format: https://[user@]hostname/owner/repo
		remoteURL = strings.TrimPrefix(remoteURL, "https://")
		remoteURL = strings.TrimPrefix(remoteURL, "http://")
		if at := strings.Index(remoteURL, "@"); at >= 0 {
			remoteURL = remoteURL[at+1:]
		}
		slash := strings.Index(remoteURL, "/")
		if slash < 0 {
			return nil, fmt.Errorf("invalid HTTPS remote URL: must be protocol://hostname/owner/repo")
		}
		hostname = remoteURL[:slash]
		path = remoteURL[slash+1:]
	}

	// Strip a port from the hostname (ssh://git@host:22/owner/repo)
	if colon := strings.Index(hostname, ":"); colon >= 0 {
		hostname = hostname[:colon]
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid remote URL: path must be owner/repo")
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]

	if hostname == "" || owner == "" || repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL")
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    owner,
		Repo:     repo,
	}, nil
}

// ResolveToken gets a GitHub token from GITHUB_TOKEN or the gh CLI
func ResolveToken(ctx context.Context, runner git.Runner) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	output, err := runner.Run(ctx, git.RunOptions{}, "gh", "auth", "token")
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}

	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}

	return token, nil
}
