package actions

import (
	"fmt"

	"gitx.dev/gitx/internal/git"
	"gitx.dev/gitx/internal/runtime"
)

// MergedBranches returns the branches from source whose tip is fully contained
// in reference, in listing order. Remote names come back without their remote
// prefix. Reserved and aggregate branches are never reported.
func MergedBranches(ctx *runtime.Context, source git.Source, reference string) ([]string, error) {
	branches, err := ctx.Git.ListBranches(ctx.Context, source)
	if err != nil {
		return nil, err
	}

	var merged []string
	seen := make(map[string]bool)
	for _, branch := range branches {
		name := branch.ShortName()
		if ctx.Config.IsReserved(name) || seen[name] {
			continue
		}
		seen[name] = true

		tip := branch.Tip
		if tip == "" {
			if tip, err = ctx.Git.RevParse(ctx.Context, branch.Name); err != nil {
				return nil, fmt.Errorf("failed to resolve %s: %w", branch.Name, err)
			}
		}

		ok, err := ctx.Git.IsMergedInto(ctx.Context, reference, tip)
		if err != nil {
			return nil, err
		}
		if ok {
			ctx.Splog.Debug("%s is merged into %s", branch.Name, reference)
			merged = append(merged, name)
		}
	}
	return merged, nil
}
