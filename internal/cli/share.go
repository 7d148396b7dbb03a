package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
)

// newShareCmd creates the share command
func newShareCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Push the current branch and track the remote copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, *dir, actions.ShareAction)
		},
	}
}
