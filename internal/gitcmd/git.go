// pattern: Imperative Shell

package gitcmd

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// CommandError describes a failed git invocation. It carries the argv and
// the combined output so failures surface the underlying git message.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Remote listing lines look like:
//
//	origin  git@github.com:user/repo.git (fetch)
//	origin  git@github.com:user/repo.git (push)
//
// Only push entries are kept; a remote without push capability is not a
// candidate for the rebase pipeline.
var pushRemotePattern = regexp.MustCompile(`^\s*(\S+)\s+(\S+)\s+.*push.*$`)

// The current branch is the line `git branch` marks with an asterisk.
var currentBranchPattern = regexp.MustCompile(`^\*\s+(.+)$`)

// Client runs git against a repository directory and parses the
// line-oriented output of the porcelain commands it needs.
type Client struct {
	runner Runner
	logger *zap.SugaredLogger
}

// NewClient creates a git client. A nil runner defaults to OSRunner.
func NewClient(runner Runner, logger *zap.SugaredLogger) *Client {
	if runner == nil {
		runner = OSRunner{}
	}
	return &Client{runner: runner, logger: logger}
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (string, error) {
	output, err := c.runner.Run(ctx, dir, "git", args...)
	if err != nil {
		c.logger.Warnw("git command failed", "dir", dir, "args", args, "error", err)
		return "", &CommandError{Args: args, Output: string(output), Err: err}
	}
	c.logger.Debugw("git command succeeded", "dir", dir, "args", args)
	return string(output), nil
}

// Remotes returns the repository's remotes as a name→URL map, keeping only
// entries listed with push capability.
func (c *Client) Remotes(ctx context.Context, dir string) (map[string]string, error) {
	output, err := c.run(ctx, dir, "remote", "-v")
	if err != nil {
		return nil, err
	}

	remotes := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		if matches := pushRemotePattern.FindStringSubmatch(line); matches != nil {
			remotes[matches[1]] = matches[2]
		}
	}
	return remotes, nil
}

// CurrentBranch returns the currently checked-out branch. A detached HEAD
// is returned as the literal marker text git prints for it.
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := c.run(ctx, dir, "branch")
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(output, "\n") {
		if matches := currentBranchPattern.FindStringSubmatch(line); matches != nil {
			return matches[1], nil
		}
	}
	return "", fmt.Errorf("no current branch in %s", dir)
}

// AddRemote defines a named remote. Callers re-query Remotes afterwards.
func (c *Client) AddRemote(ctx context.Context, dir, name, url string) error {
	_, err := c.run(ctx, dir, "remote", "add", name, url)
	return err
}

// Fetch updates the named remote's refs, pruning refs deleted upstream.
func (c *Client) Fetch(ctx context.Context, dir, remote string) error {
	_, err := c.run(ctx, dir, "fetch", "--prune", remote)
	return err
}

// Rebase reapplies the current branch on top of the given ref.
func (c *Client) Rebase(ctx context.Context, dir, ref string) error {
	_, err := c.run(ctx, dir, "rebase", ref)
	return err
}

// SubmoduleUpdate initializes and updates the repository's submodules.
func (c *Client) SubmoduleUpdate(ctx context.Context, dir string) error {
	if _, err := c.run(ctx, dir, "submodule", "init"); err != nil {
		return err
	}
	_, err := c.run(ctx, dir, "submodule", "update")
	return err
}

// ForcePushMaster force-pushes the local master branch to origin.
func (c *Client) ForcePushMaster(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "push", "-f", "origin", "master")
	return err
}
