package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/utils"
)

// newReviewCmd creates the review command
func newReviewCmd(dir *string) *cobra.Command {
	var (
		opts actions.ReviewOptions
		open bool
	)

	cmd := &cobra.Command{
		Use:   "review [branch]",
		Short: "Open or update the pull request for a branch",
		Long: `Open or update the pull request for a branch.

Without flags the branch is updated and its pull request is found or created.
--approve, --reject and --bump also record a review decision as a comment and
a commit status on the pull request.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, *dir, func(ctx *runtime.Context) error {
				if len(args) > 0 {
					opts.Branch = args[0]
				}
				if opts.Message == "-" {
					msg, err := utils.ReadFromStdin()
					if err != nil {
						return err
					}
					opts.Message = msg
				}
				pr, err := actions.ReviewAction(ctx, opts)
				if err != nil {
					return err
				}
				if open {
					if err := utils.OpenBrowser(pr.HTMLURL); err != nil {
						ctx.Splog.Warn("Could not open browser: %v", err)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Approve, "approve", false, "Approve the pull request")
	cmd.Flags().BoolVar(&opts.Reject, "reject", false, "Request changes on the pull request")
	cmd.Flags().BoolVar(&opts.Bump, "bump", false, "Ask reviewers to take another look")
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Review comment, or - to read it from stdin")
	cmd.Flags().BoolVar(&open, "open", false, "Open the pull request in a browser")
	cmd.MarkFlagsMutuallyExclusive("approve", "reject", "bump")

	return cmd
}
