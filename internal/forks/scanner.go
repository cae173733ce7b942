// pattern: Imperative Shell

package forks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Inspector reads repository state from a clone directory.
// *gitcmd.Client satisfies it.
type Inspector interface {
	Remotes(ctx context.Context, dir string) (map[string]string, error)
	CurrentBranch(ctx context.Context, dir string) (string, error)
}

// Scanner discovers fork clones one level under a base directory.
type Scanner struct {
	git Inspector
}

// NewScanner creates a scanner backed by the given repository inspector.
func NewScanner(git Inspector) *Scanner {
	return &Scanner{git: git}
}

// Scan inspects every visible subdirectory of baseDir as a fork and returns
// the forks sorted by name. Any inspection failure is returned immediately:
// discovery errors are fatal to startup.
func (s *Scanner) Scan(ctx context.Context, baseDir string) ([]*Fork, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("reading base directory %s: %w", baseDir, err)
	}

	var found []*Fork
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(baseDir, entry.Name())

		remotes, err := s.git.Remotes(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("inspecting remotes of %s: %w", path, err)
		}
		branch, err := s.git.CurrentBranch(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("inspecting branch of %s: %w", path, err)
		}

		found = append(found, &Fork{
			Name:    entry.Name(),
			Path:    path,
			Remotes: remotes,
			Branch:  branch,
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}
