package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// FindRepoRoot returns the root of the work tree containing dir
func FindRepoRoot(dir string) (string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// RemoteURL returns the first configured URL of remote in the repository at root
func RemoteURL(root, remote string) (string, error) {
	repo, err := gogit.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	r, err := repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %s: %w", remote, err)
	}

	urls := r.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remote)
	}
	return urls[0], nil
}
