package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
	"gitx.dev/gitx/internal/runtime"
)

// newBuildTagCmd creates the buildtag command
func newBuildTagCmd(dir *string) *cobra.Command {
	var (
		branch  string
		message string
	)

	cmd := &cobra.Command{
		Use:   "buildtag",
		Short: "Tag HEAD as a known good build of a taggable branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, *dir, func(ctx *runtime.Context) error {
				_, err := actions.BuildTagAction(ctx, actions.BuildTagOptions{
					Branch:  branch,
					Message: message,
				})
				return err
			})
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Branch the build belongs to (defaults to the current branch)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Tag annotation")

	return cmd
}
