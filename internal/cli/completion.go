package cli

import (
	"context"

	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/git"
)

// completeBranches is a helper for cobra.ValidArgsFunction
// that returns all local branch names in the repository.
func completeBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	dir, _ := cmd.Flags().GetString("cwd")
	root, err := git.FindRepoRoot(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := git.New(git.NewCommandRunner(root, nil), "").LocalBranchNames(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}
