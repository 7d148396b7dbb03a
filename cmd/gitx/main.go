package main

import (
	"errors"
	"os"

	"gitx.dev/gitx/internal/cli"
	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	tui.ConfigureColors()

	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		splog, _ := tui.NewSplogWithConfig(os.Stderr, "")
		splog.Error(err.Error())
		switch {
		case errors.Is(err, gitxerrors.ErrMergeConflict):
			splog.Tip("Run `git status` to see the conflicted files")
		case errors.Is(err, gitxerrors.ErrInteractiveDisabled):
			splog.Tip("Pass the branch and flags on the command line, or run gitx in a terminal")
		}
		os.Exit(1)
	}
}
