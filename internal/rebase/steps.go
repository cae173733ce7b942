// pattern: Functional Core

package rebase

import "fmt"

// Step identifies one stage of the per-fork pipeline.
type Step int

const (
	StepCreateUpstream Step = iota
	StepFetchUpstream
	StepFetchOrigin
	StepRebase
	StepSubmodules
	StepPush
)

// String returns the short step name used in errors and logs.
func (s Step) String() string {
	switch s {
	case StepCreateUpstream:
		return "create upstream remote"
	case StepFetchUpstream:
		return "fetch upstream"
	case StepFetchOrigin:
		return "fetch origin"
	case StepRebase:
		return "rebase"
	case StepSubmodules:
		return "update submodules"
	case StepPush:
		return "push"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Status returns the live status text shown while the step runs.
func (s Step) Status() string {
	switch s {
	case StepCreateUpstream:
		return "Creating upstream remote"
	case StepFetchUpstream:
		return "Fetching upstream"
	case StepFetchOrigin:
		return "Fetching origin"
	case StepRebase:
		return "Rebasing against upstream/master"
	case StepSubmodules:
		return "Updating submodules"
	case StepPush:
		return "Pushing master to origin"
	default:
		return s.String()
	}
}

// StepError tags an operational failure with the fork and step it occurred
// in. Unlike fatal startup errors, a StepError only fails its own fork.
type StepError struct {
	Fork string
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Fork, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
