package testhelpers

import (
	"context"
	"strings"

	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/git"
)

// Commands used by the branch queries, spelled exactly as the runner sees them.
const (
	LocalBranchesCmd  = "git branch --list --format=%(refname:short)%09%(objectname)%09%(HEAD)"
	RemoteBranchesCmd = "git branch --list --remotes --format=%(refname:short)%09%(objectname)%09%(HEAD)"
	CurrentBranchCmd  = "git rev-parse --abbrev-ref HEAD"
)

// Call is one command seen by a FakeRunner
type Call struct {
	Name string
	Args []string
	Opts git.RunOptions
}

// String renders the call as a space-joined command line
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

type response struct {
	output string
	fail   bool
}

// FakeRunner is a git.Runner that answers from a script and records calls.
// Unscripted commands succeed with empty output.
type FakeRunner struct {
	Calls     []Call
	responses map[string][]response
}

var _ git.Runner = (*FakeRunner)(nil)

// NewFakeRunner creates an empty FakeRunner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string][]response)}
}

// On scripts output for command. Repeated calls queue responses; the last
// one keeps answering once the queue is drained.
func (f *FakeRunner) On(command, output string) *FakeRunner {
	f.responses[command] = append(f.responses[command], response{output: output})
	return f
}

// Fail scripts command to exit non-zero with output
func (f *FakeRunner) Fail(command, output string) *FakeRunner {
	f.responses[command] = append(f.responses[command], response{output: output, fail: true})
	return f
}

// Run implements git.Runner
func (f *FakeRunner) Run(_ context.Context, opts git.RunOptions, name string, args ...string) (string, error) {
	call := Call{Name: name, Args: append([]string(nil), args...), Opts: opts}
	f.Calls = append(f.Calls, call)

	key := call.String()
	queue := f.responses[key]
	if len(queue) == 0 {
		return "", nil
	}
	resp := queue[0]
	if len(queue) > 1 {
		f.responses[key] = queue[1:]
	}

	if resp.fail {
		if opts.AllowFailure {
			return resp.output, nil
		}
		return resp.output, gitxerrors.NewExecutionError(name, args, 1, resp.output, nil)
	}
	return resp.output, nil
}

// Commands returns every recorded call as a command line
func (f *FakeRunner) Commands() []string {
	cmds := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		cmds = append(cmds, c.String())
	}
	return cmds
}

// MutatingCommands returns the recorded commands that were traced, which is
// how the git package marks commands that change repository state.
func (f *FakeRunner) MutatingCommands() []string {
	var cmds []string
	for _, c := range f.Calls {
		if c.Opts.Trace {
			cmds = append(cmds, c.String())
		}
	}
	return cmds
}

// Ran reports whether command was executed
func (f *FakeRunner) Ran(command string) bool {
	for _, c := range f.Calls {
		if c.String() == command {
			return true
		}
	}
	return false
}

// RanPrefix reports whether any executed command starts with prefix
func (f *FakeRunner) RanPrefix(prefix string) bool {
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			return true
		}
	}
	return false
}

// BranchListing renders branches in the format ListBranches parses
func BranchListing(branches ...git.Branch) string {
	lines := make([]string, 0, len(branches))
	for _, b := range branches {
		head := " "
		if b.IsHead {
			head = "*"
		}
		lines = append(lines, b.Name+"\t"+b.Tip+"\t"+head)
	}
	return strings.Join(lines, "\n")
}

// Names renders a branch listing from bare names with placeholder tips
func Names(names ...string) string {
	branches := make([]git.Branch, 0, len(names))
	for _, n := range names {
		branches = append(branches, git.Branch{Name: n, Tip: "sha-" + n})
	}
	return BranchListing(branches...)
}
