package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	gitxerrors "gitx.dev/gitx/internal/errors"
)

func TestCommandRunner(t *testing.T) {
	t.Run("streams combined output in order", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		var lines []string
		runner := NewCommandRunner(t.TempDir(), func(line string) {
			lines = append(lines, line)
		})

		out, err := runner.Run(context.Background(), RunOptions{}, "sh", "-c", "echo one; echo two 1>&2; echo three")
		require.NoError(t, err)
		require.Equal(t, []string{"one", "two", "three"}, lines)
		require.Equal(t, "one\ntwo\nthree", out)
	})

	t.Run("returns ExecutionError on non-zero exit", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		runner := NewCommandRunner(t.TempDir(), nil)
		out, err := runner.Run(context.Background(), RunOptions{}, "sh", "-c", "echo boom; exit 3")
		require.Error(t, err)
		require.Equal(t, "boom", out)
		require.True(t, errors.Is(err, gitxerrors.ErrExecution))

		var execErr *gitxerrors.ExecutionError
		require.True(t, errors.As(err, &execErr))
		require.Equal(t, "sh", execErr.Command)
		require.Equal(t, 3, execErr.ExitStatus)
		require.Contains(t, execErr.Error(), "exit status 3")
	})

	t.Run("tolerates failure when allowed", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		runner := NewCommandRunner(t.TempDir(), nil)
		out, err := runner.Run(context.Background(), RunOptions{AllowFailure: true}, "sh", "-c", "echo partial; exit 1")
		require.NoError(t, err)
		require.Equal(t, "partial", out)
	})

	t.Run("keeps very long lines", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		var lines []string
		runner := NewCommandRunner(t.TempDir(), func(line string) {
			lines = append(lines, line)
		})
		out, err := runner.Run(context.Background(), RunOptions{}, "sh", "-c", "head -c 2000000 /dev/zero | tr '\\0' a; echo; echo tail")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		require.Len(t, lines[0], 2000000)
		require.Equal(t, "tail", lines[1])
		require.Equal(t, strings.Repeat("a", 2000000)+"\ntail", out)
	})

	t.Run("reports missing binaries", func(t *testing.T) {
		runner := NewCommandRunner(t.TempDir(), nil)
		_, err := runner.Run(context.Background(), RunOptions{}, "gitx-definitely-missing-binary")
		var execErr *gitxerrors.ExecutionError
		require.True(t, errors.As(err, &execErr))
		require.Equal(t, -1, execErr.ExitStatus)
	})

	t.Run("traces quoted command lines", func(t *testing.T) {
		var traced []string
		runner := NewCommandRunner(t.TempDir(), nil)
		runner.SetTracer(func(line string) { traced = append(traced, line) })

		_, err := runner.Run(context.Background(), RunOptions{Trace: true}, "echo", "hello world")
		require.NoError(t, err)
		_, err = runner.Run(context.Background(), RunOptions{}, "echo", "quiet")
		require.NoError(t, err)

		require.Equal(t, []string{"echo 'hello world'"}, traced)
	})
}
