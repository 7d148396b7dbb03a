package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
)

// newUpdateCmd creates the update command
func newUpdateCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update the current branch with its remote and the base branch",
		Long: `Update the current branch with its remote and the base branch.

Pulls the remote copy of the current branch when one exists, pulls the base
branch, then pushes the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, *dir, actions.UpdateAction)
		},
	}
}
