package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:   "gitx",
		Short: "gitx automates a team's branching workflow on git and GitHub",
		Long: `gitx automates a team's branching workflow on git and GitHub.

Start feature branches from the latest base branch, keep them up to date,
integrate them into shared aggregate branches such as staging, release them
to the base branch, reset a broken aggregate branch to its last good build,
and clean up branches that have been merged.

Branch roles are configured in .gitx.yml at the repository root.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&dir, "cwd", "C", ".", "Run as if gitx was started in this directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug messages and the output of every command")

	rootCmd.AddCommand(
		newStartCmd(&dir),
		newUpdateCmd(&dir),
		newIntegrateCmd(&dir),
		newReleaseCmd(&dir),
		newNukeCmd(&dir),
		newCleanupCmd(&dir),
		newBuildTagCmd(&dir),
		newShareCmd(&dir),
		newReviewCmd(&dir),
	)

	return rootCmd
}
