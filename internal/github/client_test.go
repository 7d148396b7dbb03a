package github_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"

	githubpkg "gitx.dev/gitx/internal/github"
	"gitx.dev/gitx/testhelpers"
)

func newClient(t *testing.T, config *testhelpers.MockGitHubServerConfig) *githubpkg.RESTClient {
	t.Helper()
	gh, owner, repo := testhelpers.NewMockGitHubClient(t, config)
	client := githubpkg.NewRESTClientWith(gh, owner, repo)
	client.SetBackOff(func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3)
	})
	return client
}

func TestFindOrCreatePullRequest(t *testing.T) {
	t.Run("creates a pull request with a described body", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		client := newClient(t, config)

		pr, err := client.FindOrCreatePullRequest(context.Background(), githubpkg.PullRequestRequest{
			Head:     "feature",
			Base:     "main",
			Describe: func() (string, error) { return "* first change", nil },
		})
		require.NoError(t, err)
		require.Equal(t, 1, pr.Number)
		require.Equal(t, "feature", pr.Head)
		require.Equal(t, "main", pr.Base)
		require.Equal(t, "feature", pr.Title)
		require.Equal(t, "sha-feature", pr.HeadSHA)
		require.Equal(t, "https://github.com/owner/repo/pull/1", pr.HTMLURL)

		require.Len(t, config.CreatedPRs, 1)
		require.Equal(t, "* first change", config.CreatedPRs[0].GetBody())
	})

	t.Run("returns the existing pull request without describing", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		client := newClient(t, config)

		first, err := client.FindOrCreatePullRequest(context.Background(), githubpkg.PullRequestRequest{Head: "feature", Base: "main"})
		require.NoError(t, err)

		second, err := client.FindOrCreatePullRequest(context.Background(), githubpkg.PullRequestRequest{
			Head: "feature",
			Base: "main",
			Describe: func() (string, error) {
				t.Fatal("describe must not be called for an existing pull request")
				return "", nil
			},
		})
		require.NoError(t, err)
		require.Equal(t, first.Number, second.Number)
		require.Len(t, config.CreatedPRs, 1)
	})

	t.Run("describe errors abort creation", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		client := newClient(t, config)

		_, err := client.FindOrCreatePullRequest(context.Background(), githubpkg.PullRequestRequest{
			Head:     "feature",
			Base:     "main",
			Describe: func() (string, error) { return "", errors.New("editor failed") },
		})
		require.EqualError(t, err, "editor failed")
		require.Empty(t, config.CreatedPRs)
	})
}

func TestBranchStatus(t *testing.T) {
	config := testhelpers.NewMockGitHubServerConfig()
	config.CombinedStates["green"] = "success"
	config.CombinedStates["red"] = "failure"
	config.CombinedStates["broken"] = "error"
	client := newClient(t, config)

	cases := map[string]githubpkg.Status{
		"green":   githubpkg.StatusSuccess,
		"red":     githubpkg.StatusFailure,
		"broken":  githubpkg.StatusFailure,
		"running": githubpkg.StatusPending,
	}
	for branch, want := range cases {
		got, err := client.BranchStatus(context.Background(), branch)
		require.NoError(t, err)
		require.Equal(t, want, got, branch)
	}
}

func TestBranchStatusRetriesTransientFailures(t *testing.T) {
	config := testhelpers.NewMockGitHubServerConfig()
	config.CombinedStates["feature"] = "success"
	config.TransientFailures["GET /repos/owner/repo/commits/feature/status"] = 2
	client := newClient(t, config)

	status, err := client.BranchStatus(context.Background(), "feature")
	require.NoError(t, err)
	require.Equal(t, githubpkg.StatusSuccess, status)
	require.Len(t, config.Requests, 3)
}

func TestBranchStatusGivesUpAfterRetries(t *testing.T) {
	config := testhelpers.NewMockGitHubServerConfig()
	config.TransientFailures["GET /repos/owner/repo/commits/feature/status"] = 10
	client := newClient(t, config)

	_, err := client.BranchStatus(context.Background(), "feature")
	require.Error(t, err)
	require.Len(t, config.Requests, 4)
}

func TestAddCommentAndReviewStatus(t *testing.T) {
	config := testhelpers.NewMockGitHubServerConfig()
	client := newClient(t, config)
	ctx := context.Background()

	pr, err := client.FindOrCreatePullRequest(ctx, githubpkg.PullRequestRequest{Head: "feature", Base: "main"})
	require.NoError(t, err)

	require.NoError(t, client.AddComment(ctx, pr, "[gitx] integrated into staging :twisted_rightwards_arrows:"))
	require.Equal(t, []string{"[gitx] integrated into staging :twisted_rightwards_arrows:"}, config.Comments[pr.Number])

	require.NoError(t, client.UpdateReviewStatus(ctx, pr, githubpkg.StatusSuccess, "approved by octocat"))
	statuses := config.Statuses["sha-feature"]
	require.Len(t, statuses, 1)
	require.Equal(t, "success", statuses[0].GetState())
	require.Equal(t, githubpkg.ReviewContext, statuses[0].GetContext())
	require.Equal(t, "approved by octocat", statuses[0].GetDescription())
}

func TestCurrentUser(t *testing.T) {
	config := testhelpers.NewMockGitHubServerConfig()
	config.Login = "hubot"
	client := newClient(t, config)

	login, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hubot", login)
}

func TestParseGitHubRemoteURL(t *testing.T) {
	cases := []struct {
		url  string
		want githubpkg.RepoInfo
	}{
		{"https://github.com/owner/repo.git", githubpkg.RepoInfo{Hostname: "github.com", Owner: "owner", Repo: "repo"}},
		{"git@github.com:owner/repo.git", githubpkg.RepoInfo{Hostname: "github.com", Owner: "owner", Repo: "repo"}},
		{"ssh://git@github.example.com:22/team/app.git", githubpkg.RepoInfo{Hostname: "github.example.com", Owner: "team", Repo: "app"}},
		{"https://token@github.example.com/team/app", githubpkg.RepoInfo{Hostname: "github.example.com", Owner: "team", Repo: "app"}},
	}
	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			info, err := githubpkg.ParseGitHubRemoteURL(tc.url)
			require.NoError(t, err)
			require.Equal(t, tc.want, *info)
		})
	}

	_, err := githubpkg.ParseGitHubRemoteURL("not-a-remote")
	require.Error(t, err)
}

func TestResolveToken(t *testing.T) {
	t.Run("prefers GITHUB_TOKEN", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-token")
		runner := testhelpers.NewFakeRunner()
		token, err := githubpkg.ResolveToken(context.Background(), runner)
		require.NoError(t, err)
		require.Equal(t, "env-token", token)
		require.Empty(t, runner.Calls)
	})

	t.Run("falls back to gh auth token", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		runner := testhelpers.NewFakeRunner().On("gh auth token", "gh-token")
		token, err := githubpkg.ResolveToken(context.Background(), runner)
		require.NoError(t, err)
		require.Equal(t, "gh-token", token)
	})

	t.Run("empty token is an error", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		runner := testhelpers.NewFakeRunner()
		_, err := githubpkg.ResolveToken(context.Background(), runner)
		require.Error(t, err)
	})
}
