package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
	"gitx.dev/gitx/internal/runtime"
)

// newReleaseCmd creates the release command
func newReleaseCmd(dir *string) *cobra.Command {
	var (
		cleanup   bool
		integrate bool
	)

	cmd := &cobra.Command{
		Use:   "release [branch]",
		Short: "Release a feature branch to the base branch",
		Long: `Release a feature branch to the base branch.

After confirmation the branch is updated and its build status checked. A
status other than success asks for a second confirmation. The branch is then
merged into the base branch and pushed, after_release commands run, and the
base branch is integrated into the default aggregate branch.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, *dir, func(ctx *runtime.Context) error {
				opts := actions.ReleaseOptions{Cleanup: cleanup, Integrate: integrate}
				if len(args) > 0 {
					opts.Branch = args[0]
				}
				outcome, err := actions.ReleaseAction(ctx, opts)
				if err != nil {
					return err
				}
				reportOutcome(ctx, outcome)
				return nil
			})
		},
	}

	var noIntegrate bool

	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "Delete merged branches after releasing")
	cmd.Flags().BoolVar(&integrate, "integrate", true, "Integrate the base branch into the default aggregate branch after releasing")
	cmd.Flags().BoolVar(&noIntegrate, "no-integrate", false, "Skip integrating after releasing")

	// Apply --no-integrate flag
	cmd.PreRun = func(_ *cobra.Command, _ []string) {
		if noIntegrate {
			integrate = false
		}
	}

	return cmd
}
