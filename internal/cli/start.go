package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
	"gitx.dev/gitx/internal/runtime"
)

// newStartCmd creates the start command
func newStartCmd(dir *string) *cobra.Command {
	var issue string

	cmd := &cobra.Command{
		Use:   "start [branch]",
		Short: "Start a new feature branch from the latest base branch",
		Long: `Start a new feature branch from the latest base branch.

The base branch is checked out and pulled first. You are asked for a name
until it is a valid branch name that exists neither locally nor on the remote.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, *dir, func(ctx *runtime.Context) error {
				opts := actions.StartOptions{Issue: issue}
				if len(args) > 0 {
					opts.Branch = args[0]
				}
				_, err := actions.StartAction(ctx, opts)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&issue, "issue", "", "Issue number to reference in an initial empty commit")

	return cmd
}
