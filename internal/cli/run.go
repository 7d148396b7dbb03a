package cli

import (
	"github.com/spf13/cobra"

	"gitx.dev/gitx/internal/actions"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
)

// run is a helper that provides a runtime context to a command's execution function
func run(cmd *cobra.Command, dir string, fn func(ctx *runtime.Context) error) error {
	splog, err := tui.NewSplogWithConfig(cmd.OutOrStdout(), tui.GetLogFilePath())
	if err != nil {
		// File logging is best effort
		splog, _ = tui.NewSplogWithConfig(cmd.OutOrStdout(), "")
	}
	defer func() { _ = splog.Close() }()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		splog.SetVerbose(true)
	}

	splog.Debug("gitx %s %v", cmd.Name(), cmd.Flags().Args())

	ctx, err := runtime.GetContext(cmd.Context(), dir, splog)
	if err != nil {
		return err
	}
	return fn(ctx)
}

// reportOutcome tells the user when a confirmation was declined. Declining is
// not an error.
func reportOutcome(ctx *runtime.Context, outcome actions.Outcome) {
	if outcome == actions.Declined {
		ctx.Splog.Info("Aborted. No changes were made after the declined confirmation.")
	}
}
