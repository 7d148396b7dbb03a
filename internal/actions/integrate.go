package actions

import (
	"fmt"
	"strings"

	gitxerrors "gitx.dev/gitx/internal/errors"
	"gitx.dev/gitx/internal/github"
	"gitx.dev/gitx/internal/runtime"
	"gitx.dev/gitx/internal/tui"
)

// IntegrateState is a step of the integrate state machine
type IntegrateState int

const (
	// StateStart is the entry state: nothing has run yet
	StateStart IntegrateState = iota
	// StateUpdated means the working branch has been updated
	StateUpdated
	// StateAggregateReady means a fresh copy of the aggregate branch is checked out
	StateAggregateReady
	// StateMerged means the aggregate branch holds the feature merge
	StateMerged
	// StateFinished means the aggregate is published and the feature is checked out again
	StateFinished
)

func (s IntegrateState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateUpdated:
		return "updated"
	case StateAggregateReady:
		return "aggregate-ready"
	case StateMerged:
		return "merged"
	case StateFinished:
		return "finished"
	}
	return fmt.Sprintf("IntegrateState(%d)", int(s))
}

// IntegrateOptions contains options for the integrate command
type IntegrateOptions struct {
	// Feature is the branch to integrate. Defaults to the current branch.
	Feature string
	// Target is the aggregate branch. Defaults to the first configured aggregate.
	Target string
	// Resume continues after a manually resolved merge conflict. The
	// aggregate branch must be checked out.
	Resume bool
}

type integration struct {
	ctx       *runtime.Context
	feature   string
	aggregate string
	resume    bool
	review    *github.PullRequest
}

// IntegrateAction merges a feature branch into an aggregate branch and publishes it
func IntegrateAction(ctx *runtime.Context, opts IntegrateOptions) error {
	aggregate := opts.Target
	if aggregate == "" {
		aggregate = ctx.Config.DefaultAggregate()
	}
	if !ctx.Config.IsAggregate(aggregate) {
		return gitxerrors.NewConfigurationError(aggregate,
			"Invalid aggregate branch: %s must be one of the supported aggregate branches: %s",
			aggregate, strings.Join(ctx.Config.AggregateBranches, ", "))
	}

	feature, err := resolveFeature(ctx, opts)
	if err != nil {
		return err
	}

	in := &integration{
		ctx:       ctx,
		feature:   feature,
		aggregate: aggregate,
		resume:    opts.Resume,
	}
	ctx.Splog.Info("Integrating %s into %s", tui.ColorBranchName(feature), tui.ColorBranchName(aggregate))
	return in.run(StateStart)
}

// resolveFeature picks the feature branch and asks again until it names an
// existing local branch
func resolveFeature(ctx *runtime.Context, opts IntegrateOptions) (string, error) {
	feature := opts.Feature
	if feature == "" && !opts.Resume {
		current, err := ctx.Git.CurrentBranch(ctx.Context)
		if err != nil {
			return "", err
		}
		feature = current
	}

	for {
		if feature != "" {
			exists, err := ctx.Git.LocalBranchExists(ctx.Context, feature)
			if err != nil {
				return "", err
			}
			if exists {
				return feature, nil
			}
			ctx.Splog.Warn("Unknown branch %s", feature)
		}
		answer, err := ctx.Prompter.Input("What feature branch should be integrated?", "")
		if err != nil {
			return "", err
		}
		feature = strings.TrimSpace(answer)
	}
}

func (in *integration) run(state IntegrateState) error {
	for state != StateFinished {
		next, err := in.step(state)
		if err != nil {
			return err
		}
		in.ctx.Splog.Debug("integrate %s: %s -> %s", in.feature, state, next)
		state = next
	}
	return nil
}

func (in *integration) step(state IntegrateState) (IntegrateState, error) {
	switch state {
	case StateStart:
		return in.update()
	case StateUpdated:
		return in.prepareAggregate()
	case StateAggregateReady:
		return in.merge()
	case StateMerged:
		return in.publish()
	}
	return state, fmt.Errorf("integrate cannot continue from state %s", state)
}

// update brings the working branch up to date. On resume that is the
// aggregate branch holding the resolved merge.
func (in *integration) update() (IntegrateState, error) {
	ctx := in.ctx
	branch, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return StateStart, err
	}
	if !in.resume && branch != in.feature {
		if err := ctx.Git.Checkout(ctx.Context, in.feature); err != nil {
			return StateStart, err
		}
		branch = in.feature
	}

	if err := updateBranch(ctx, branch); err != nil {
		return StateStart, err
	}

	if !ctx.Config.IsReserved(in.feature) {
		if in.review, err = findOrCreateReview(ctx, in.feature); err != nil {
			return StateStart, err
		}
	}

	if in.resume {
		return StateMerged, nil
	}
	return StateUpdated, nil
}

// prepareAggregate checks out a fresh copy of the aggregate branch, creating
// it from the base branch when the remote does not have it yet
func (in *integration) prepareAggregate() (IntegrateState, error) {
	ctx := in.ctx
	g := ctx.Git

	onRemote, err := g.RemoteBranchExists(ctx.Context, in.aggregate)
	if err != nil {
		return StateUpdated, err
	}
	if !onRemote {
		ctx.Splog.Info("Creating %s from %s", tui.ColorBranchName(in.aggregate), tui.ColorBranchName(ctx.Config.BaseBranch))
		if err := g.CreateBranch(ctx.Context, in.aggregate, ctx.Config.BaseBranch); err != nil {
			return StateUpdated, err
		}
		if err := g.Push(ctx.Context, in.aggregate+":"+in.aggregate); err != nil {
			return StateUpdated, err
		}
	}

	if err := g.Fetch(ctx.Context); err != nil {
		return StateUpdated, err
	}
	// A stale local copy is discarded so the checkout tracks the remote
	if err := g.DeleteBranch(ctx.Context, in.aggregate, true, true); err != nil {
		return StateUpdated, err
	}
	if err := g.Checkout(ctx.Context, in.aggregate); err != nil {
		return StateUpdated, err
	}
	return StateAggregateReady, nil
}

func (in *integration) merge() (IntegrateState, error) {
	ctx := in.ctx
	message := connectedTo(fmt.Sprintf("[gitx] Integrate %s into %s", in.feature, in.aggregate), in.review)
	if err := ctx.Git.MergeNoFF(ctx.Context, message, in.feature); err != nil {
		return StateAggregateReady, gitxerrors.NewMergeConflictError("gitx integrate --resume "+in.feature, err)
	}
	return StateMerged, nil
}

func (in *integration) publish() (IntegrateState, error) {
	ctx := in.ctx
	if err := ctx.Git.Push(ctx.Context, "HEAD"); err != nil {
		return StateMerged, err
	}
	if err := ctx.Git.Checkout(ctx.Context, in.feature); err != nil {
		return StateMerged, err
	}

	if in.review != nil {
		client, err := ctx.ReviewClient()
		if err != nil {
			return StateMerged, err
		}
		comment := fmt.Sprintf("[gitx] integrated into %s :twisted_rightwards_arrows:", in.aggregate)
		if err := client.AddComment(ctx.Context, in.review, comment); err != nil {
			return StateMerged, err
		}
	}

	ctx.Splog.Info("Integrated %s into %s", tui.ColorBranchName(in.feature), tui.ColorBranchName(in.aggregate))
	return StateFinished, nil
}
