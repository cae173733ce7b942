// pattern: Functional Core

package forks

import "fmt"

// FindUpstream returns the single upstream URL shared across the forks.
// Two different non-empty upstream URLs are an ambiguous configuration and
// an error; so is finding none at all. Both are fatal to startup.
func FindUpstream(all []*Fork) (string, error) {
	upstream := ""
	for _, fork := range all {
		url := fork.Upstream()
		if url == "" {
			continue
		}
		if upstream != "" && url != upstream {
			return "", fmt.Errorf("found more than one upstream: %s and %s", upstream, url)
		}
		upstream = url
	}

	if upstream == "" {
		return "", fmt.Errorf("no upstream remote found in any fork")
	}
	return upstream, nil
}

// RequireBranch verifies every fork is on the given branch. The rebase
// pipeline rewrites master; running it from any other branch would rebase
// the wrong history.
func RequireBranch(all []*Fork, branch string) error {
	for _, fork := range all {
		if fork.Branch != branch {
			return fmt.Errorf("fork %s (%s) is on branch %s, not %s",
				fork.Name, fork.Path, fork.Branch, branch)
		}
	}
	return nil
}
