package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
)

// newCleanupCmd creates the cleanup command
func newCleanupCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete branches that have been merged into the base branch",
		Long: `Delete branches that have been merged into the base branch.

The base branch is checked out and pulled, stale remote-tracking branches are
pruned, then every remote and local branch fully merged into the base branch
is deleted. Reserved and aggregate branches are never deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, *dir, actions.CleanupAction)
		},
	}
}
