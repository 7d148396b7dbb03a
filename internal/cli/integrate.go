package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
	"gitx.dev/gitx/internal/runtime"
)

// newIntegrateCmd creates the integrate command
func newIntegrateCmd(dir *string) *cobra.Command {
	var resume string

	cmd := &cobra.Command{
		Use:   "integrate [aggregate]",
		Short: "Merge the current branch into an aggregate branch",
		Long: `Merge the current branch into an aggregate branch such as staging.

The branch is updated first, then merged into a fresh copy of the aggregate
branch, which is pushed. If the merge conflicts, resolve it, commit, and run
gitx integrate --resume <branch> from the aggregate branch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, *dir, func(ctx *runtime.Context) error {
				opts := actions.IntegrateOptions{
					Feature: resume,
					Resume:  resume != "",
				}
				if len(args) > 0 {
					opts.Target = args[0]
				}
				return actions.IntegrateAction(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVar(&resume, "resume", "", "Resume integrating this branch after fixing a merge conflict")
	_ = cmd.RegisterFlagCompletionFunc("resume", completeBranches)

	return cmd
}
