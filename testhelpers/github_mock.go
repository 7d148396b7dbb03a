package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	mu sync.Mutex

	// PRs maps head branch names to open pull requests
	PRs map[string]*github.PullRequest
	// CreatedPRs stores PRs that were created (for testing)
	CreatedPRs []*github.PullRequest
	// CombinedStates maps refs to their combined status state
	CombinedStates map[string]string
	// Comments maps PR numbers to comment bodies
	Comments map[int][]string
	// Statuses maps commit refs to statuses that were created
	Statuses map[string][]*github.RepoStatus
	// Login is returned from GET /user
	Login string
	// TransientFailures maps "METHOD path" to the number of 502 responses to
	// serve before answering normally
	TransientFailures map[string]int
	// Requests records every "METHOD path" served
	Requests []string
	// Owner and Repo for the mock server
	Owner string
	Repo  string
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		PRs:               make(map[string]*github.PullRequest),
		CombinedStates:    make(map[string]string),
		Comments:          make(map[int][]string),
		Statuses:          make(map[string][]*github.RepoStatus),
		TransientFailures: make(map[string]int),
		Login:             "octocat",
		Owner:             "owner",
		Repo:              "repo",
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub API endpoints gitx uses
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	repoPath := "/repos/" + config.Owner + "/" + config.Repo

	handler := func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		defer config.mu.Unlock()

		key := r.Method + " " + r.URL.Path
		config.Requests = append(config.Requests, key)
		if n := config.TransientFailures[key]; n > 0 {
			config.TransientFailures[key] = n - 1
			writeJSON(w, http.StatusBadGateway, map[string]string{"message": "bad gateway"})
			return
		}

		path := r.URL.Path
		switch {
		case path == "/user" && r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, &github.User{Login: github.String(config.Login)})

		case path == repoPath+"/pulls" && r.Method == http.MethodGet:
			head := r.URL.Query().Get("head")
			branchName := strings.TrimPrefix(head, config.Owner+":")
			if pr, ok := config.PRs[branchName]; ok {
				writeJSON(w, http.StatusOK, []*github.PullRequest{pr})
				return
			}
			writeJSON(w, http.StatusOK, []*github.PullRequest{})

		case path == repoPath+"/pulls" && r.Method == http.MethodPost:
			var newPR github.NewPullRequest
			if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			prNumber := len(config.CreatedPRs) + 1
			pr := &github.PullRequest{
				Number:  github.Int(prNumber),
				Title:   newPR.Title,
				Body:    newPR.Body,
				Head:    &github.PullRequestBranch{Ref: newPR.Head, SHA: github.String("sha-" + newPR.GetHead())},
				Base:    &github.PullRequestBranch{Ref: newPR.Base},
				HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", config.Owner, config.Repo, prNumber)),
			}
			config.CreatedPRs = append(config.CreatedPRs, pr)
			config.PRs[newPR.GetHead()] = pr
			writeJSON(w, http.StatusCreated, pr)

		case strings.HasPrefix(path, repoPath+"/commits/") && strings.HasSuffix(path, "/status") && r.Method == http.MethodGet:
			ref := strings.TrimSuffix(strings.TrimPrefix(path, repoPath+"/commits/"), "/status")
			state, ok := config.CombinedStates[ref]
			if !ok {
				state = "pending"
			}
			writeJSON(w, http.StatusOK, &github.CombinedStatus{State: github.String(state)})

		case strings.HasPrefix(path, repoPath+"/statuses/") && r.Method == http.MethodPost:
			ref := strings.TrimPrefix(path, repoPath+"/statuses/")
			var status github.RepoStatus
			if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			config.Statuses[ref] = append(config.Statuses[ref], &status)
			writeJSON(w, http.StatusCreated, &status)

		case strings.HasPrefix(path, repoPath+"/issues/") && strings.HasSuffix(path, "/comments") && r.Method == http.MethodPost:
			number, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(path, repoPath+"/issues/"), "/comments"))
			if err != nil {
				http.Error(w, "Invalid issue number", http.StatusBadRequest)
				return
			}
			var comment github.IssueComment
			if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			config.Comments[number] = append(config.Comments[number], comment.GetBody())
			writeJSON(w, http.StatusCreated, &comment)

		default:
			http.Error(w, fmt.Sprintf("Unhandled path: %s (method: %s)", path, r.Method), http.StatusNotFound)
		}
	}

	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient creates a GitHub client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}
