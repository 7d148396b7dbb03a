package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo is a throwaway repository driven through the git binary, isolated
// from the user's global configuration.
type GitRepo struct {
	Dir string
	// Remotes maps remote names to their bare repository paths
	Remotes map[string]string
}

// NewGitRepo runs git init in dir with main as the initial branch
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir, Remotes: make(map[string]string)}
	if _, err := gitIn("", "-c", "init.defaultBranch=main", "init", "--initial-branch", "main", dir); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}
	for key, value := range map[string]string{
		"user.name":      "Gitx Test",
		"user.email":     "gitx@example.com",
		"core.autocrlf":  "false",
		"commit.gpgsign": "false",
		"tag.gpgsign":    "false",
	} {
		if _, err := repo.git("config", key, value); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func gitIn(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1", "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *GitRepo) git(args ...string) (string, error) {
	return gitIn(r.Dir, args...)
}

// RunGitCommandAndGetOutput runs git in the repository and returns its trimmed output
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	return r.git(args...)
}

// CreateChangeAndCommit writes content to <prefix>.txt and commits it with
// content as the message
func (r *GitRepo) CreateChangeAndCommit(content, prefix string) error {
	name := "change.txt"
	if prefix != "" {
		name = strings.ReplaceAll(prefix, "/", "_") + ".txt"
	}
	if err := os.WriteFile(filepath.Join(r.Dir, name), []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if _, err := r.git("add", name); err != nil {
		return err
	}
	_, err := r.git("commit", "--message", content)
	return err
}

// CreateAndCheckoutBranch creates name at HEAD and checks it out
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	_, err := r.git("checkout", "-b", name)
	return err
}

// CheckoutBranch checks out an existing branch
func (r *GitRepo) CheckoutBranch(name string) error {
	_, err := r.git("checkout", name)
	return err
}

// MergeBranch checks out branch and merges mergeIn into it with a merge commit
func (r *GitRepo) MergeBranch(branch, mergeIn string) error {
	if err := r.CheckoutBranch(branch); err != nil {
		return err
	}
	_, err := r.git("merge", "--no-ff", "--no-edit", mergeIn)
	return err
}

// CreateBareRemote creates a bare repository next to the work tree and adds
// it as remote name. It returns the bare repository path.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bare := r.Dir + "-" + name + ".git"
	if _, err := gitIn("", "init", "--bare", bare); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}
	if _, err := r.git("remote", "add", name, bare); err != nil {
		return "", err
	}
	r.Remotes[name] = bare
	return bare, nil
}

// PushBranch pushes branch to remote and sets it as upstream
func (r *GitRepo) PushBranch(remote, branch string) error {
	_, err := r.git("push", "--set-upstream", remote, branch)
	return err
}

// GetRevision resolves rev to a commit id
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.git("rev-parse", rev)
}

// CreateTag creates an annotated tag at HEAD
func (r *GitRepo) CreateTag(name string) error {
	_, err := r.git("tag", "--annotate", "--message", name, name)
	return err
}

// LocalBranches lists local branch names
func (r *GitRepo) LocalBranches() ([]string, error) {
	out, err := r.git("branch", "--list", "--format=%(refname:short)")
	if err != nil || out == "" {
		return nil, err
	}
	return strings.Split(out, "\n"), nil
}
