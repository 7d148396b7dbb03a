package git

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	gitxerrors "gitx.dev/gitx/internal/errors"
)

// DefaultCommandTimeout is the default timeout for external commands
const DefaultCommandTimeout = 5 * time.Minute

// RunOptions controls how a single command is executed
type RunOptions struct {
	// AllowFailure tolerates a non-zero exit status instead of returning an ExecutionError
	AllowFailure bool
	// Trace logs the command line before it runs
	Trace bool
}

// LineObserver receives each line of command output as it is produced
type LineObserver func(line string)

// Runner executes external commands. It is the only I/O boundary the
// workflow actions use, so tests can swap in a scripted fake.
type Runner interface {
	Run(ctx context.Context, opts RunOptions, name string, args ...string) (string, error)
}

// CommandRunner handles execution of external commands
type CommandRunner struct {
	workingDir string
	observer   LineObserver
	tracer     func(commandLine string)
}

// NewCommandRunner creates a new CommandRunner. observer may be nil.
func NewCommandRunner(workingDir string, observer LineObserver) *CommandRunner {
	return &CommandRunner{workingDir: workingDir, observer: observer}
}

// SetTracer sets the function that receives traced command lines
func (r *CommandRunner) SetTracer(tracer func(commandLine string)) {
	r.tracer = tracer
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes name with args. Standard output and error share one pipe so
// lines reach the observer in the order the process wrote them. The
// accumulated output is returned trimmed.
func (r *CommandRunner) Run(ctx context.Context, opts RunOptions, name string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	if opts.Trace && r.tracer != nil {
		r.tracer(FormatCommand(name, args...))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}

	reader, writer, err := os.Pipe()
	if err != nil {
		return "", err
	}
	cmd.Stdout = writer
	cmd.Stderr = writer

	if err := cmd.Start(); err != nil {
		_ = reader.Close()
		_ = writer.Close()
		if opts.AllowFailure {
			return "", nil
		}
		return "", gitxerrors.NewExecutionError(name, args, -1, "", err)
	}
	// The child holds its own copy of the write end; EOF arrives when it exits.
	_ = writer.Close()

	output, readErr := r.collect(reader)
	_ = reader.Close()

	err = cmd.Wait()
	out := strings.TrimSpace(output)
	if err == nil && readErr != nil {
		err = readErr
	}
	if err == nil || opts.AllowFailure {
		return out, nil
	}

	status := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status = exitErr.ExitCode()
	}
	if ctx.Err() == context.DeadlineExceeded {
		err = ctx.Err()
	}
	return out, gitxerrors.NewExecutionError(name, args, status, out, err)
}

// collect reads the pipe to EOF, handing each line to the observer. Lines
// of any length are kept whole.
func (r *CommandRunner) collect(pipe io.Reader) (string, error) {
	var output strings.Builder
	reader := bufio.NewReader(pipe)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if r.observer != nil {
				r.observer(line)
			}
			output.WriteString(line)
			output.WriteByte('\n')
		}
		if err == io.EOF {
			return output.String(), nil
		}
		if err != nil {
			return output.String(), fmt.Errorf("failed to read command output: %w", err)
		}
	}
}

// FormatCommand renders a command line for display with shell quoting
func FormatCommand(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + shellquote.Join(args...)
}
