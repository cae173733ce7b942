// pattern: Imperative Shell

package rebase

import (
	"context"

	"go.uber.org/zap"

	"forkrebase/internal/forks"
)

// GitClient is the slice of git operations the pipeline needs.
// *gitcmd.Client satisfies it.
type GitClient interface {
	Remotes(ctx context.Context, dir string) (map[string]string, error)
	AddRemote(ctx context.Context, dir, name, url string) error
	Fetch(ctx context.Context, dir, remote string) error
	Rebase(ctx context.Context, dir, ref string) error
	SubmoduleUpdate(ctx context.Context, dir string) error
	ForcePushMaster(ctx context.Context, dir string) error
}

// State classifies a fork's row in the batch.
type State int

const (
	StateRunning State = iota
	StateDone
	StateFailed
)

// Event reports a live status change for one fork. Remotes, when non-nil,
// carries the fork's refreshed remote map after the upstream remote was
// created; consumers apply it on their own goroutine.
type Event struct {
	Fork    string
	Status  string
	State   State
	Remotes map[string]string
}

// Orchestrator runs the batch rebase: for each fork, ensure the upstream
// remote exists, fetch upstream and origin, rebase onto upstream/master,
// update submodules, and force-push master to origin. Forks are processed
// strictly one at a time; a failed step fails only its fork.
type Orchestrator struct {
	git    GitClient
	logger *zap.SugaredLogger
}

// NewOrchestrator creates a batch rebase orchestrator.
func NewOrchestrator(git GitClient, logger *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{git: git, logger: logger}
}

// Run processes the given forks sequentially against the consensus upstream
// URL, emitting an Event after every step. The events channel is closed when
// the batch finishes. Run blocks; callers run it in a goroutine and consume
// events from the other side. The forks themselves are read-only to Run:
// state changes (including a refreshed remote map) travel on the events, so
// a consumer rendering the same forks never races with the batch.
func (o *Orchestrator) Run(ctx context.Context, batch []*forks.Fork, upstreamURL string, events chan<- Event) {
	defer close(events)

	for _, fork := range batch {
		if err := o.runFork(ctx, fork, upstreamURL, events); err != nil {
			o.logger.Warnw("fork rebase failed", "fork", fork.Name, "error", err)
			events <- Event{Fork: fork.Name, Status: err.Error(), State: StateFailed}
			continue
		}
		o.logger.Infow("fork rebase complete", "fork", fork.Name)
		events <- Event{Fork: fork.Name, Status: "Complete", State: StateDone}
	}
}

// runFork executes the pipeline for one fork, stopping at the first failed
// step. The returned error is always a *StepError.
func (o *Orchestrator) runFork(ctx context.Context, fork *forks.Fork, upstreamURL string, events chan<- Event) error {
	step := func(s Step, run func() error) error {
		events <- Event{Fork: fork.Name, Status: s.Status(), State: StateRunning}
		o.logger.Debugw("step starting", "fork", fork.Name, "step", s.String())
		if err := run(); err != nil {
			return &StepError{Fork: fork.Name, Step: s, Err: err}
		}
		return nil
	}

	if fork.Upstream() == "" {
		var refreshed map[string]string
		err := step(StepCreateUpstream, func() error {
			if err := o.git.AddRemote(ctx, fork.Path, forks.UpstreamRemote, upstreamURL); err != nil {
				return err
			}
			remotes, err := o.git.Remotes(ctx, fork.Path)
			if err != nil {
				return err
			}
			refreshed = remotes
			return nil
		})
		if err != nil {
			return err
		}
		// The fork is never written from this goroutine; the consumer owns
		// it and applies the refreshed remote map itself.
		events <- Event{Fork: fork.Name, Status: StepCreateUpstream.Status(), State: StateRunning, Remotes: refreshed}
	}

	if err := step(StepFetchUpstream, func() error {
		return o.git.Fetch(ctx, fork.Path, forks.UpstreamRemote)
	}); err != nil {
		return err
	}

	if err := step(StepFetchOrigin, func() error {
		return o.git.Fetch(ctx, fork.Path, forks.OriginRemote)
	}); err != nil {
		return err
	}

	if err := step(StepRebase, func() error {
		return o.git.Rebase(ctx, fork.Path, forks.UpstreamRemote+"/master")
	}); err != nil {
		return err
	}

	if err := step(StepSubmodules, func() error {
		return o.git.SubmoduleUpdate(ctx, fork.Path)
	}); err != nil {
		return err
	}

	return step(StepPush, func() error {
		return o.git.ForcePushMaster(ctx, fork.Path)
	})
}
