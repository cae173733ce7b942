// pattern: Imperative Shell

package gitcmd

import (
	"context"
	"os/exec"
)

// Runner executes an external command in an explicit working directory and
// returns its combined output. Implementations can provide real execution
// or scripted behavior for tests.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// OSRunner executes commands on the real operating system.
type OSRunner struct{}

// Run executes the command with exec.CommandContext. The working directory
// is set per invocation; the process-wide working directory is never touched.
func (OSRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
