package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
	"gitx.dev/gitx/internal/runtime"
)

// newNukeCmd creates the nuke command
func newNukeCmd(dir *string) *cobra.Command {
	var destination string

	cmd := &cobra.Command{
		Use:   "nuke <aggregate>",
		Short: "Reset an aggregate branch to the last known good build",
		Long: `Reset an aggregate branch to the last known good build.

The branch is recreated, locally and on the remote, from the newest build tag
of the destination branch. When the migrations directory changed since that
build you are shown the migrations to roll back and asked again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, *dir, func(ctx *runtime.Context) error {
				outcome, err := actions.NukeAction(ctx, actions.NukeOptions{
					Branch:      args[0],
					Destination: destination,
				})
				if err != nil {
					return err
				}
				reportOutcome(ctx, outcome)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Branch whose last build tag to reset to")

	return cmd
}
