// pattern: Imperative Shell

package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// UnknownRepoName labels an upstream URL that no registry section claims.
const UnknownRepoName = "Unknown Repo"

// Registry maps canonical upstream URLs to display names. It is loaded once
// at startup from an INI file and read-only afterwards. Each section name is
// a display name; each section carries a `url` key:
//
//	[Widget Project]
//	url = git@example.com:acme/widget.git
type Registry struct {
	names map[string]string
}

// LoadRegistry reads the known-repository registry from path.
// A missing or malformed file is an error: startup requires the registry.
func LoadRegistry(path string) (*Registry, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading registry %s: %w", path, err)
	}

	names := make(map[string]string)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		key, err := section.GetKey("url")
		if err != nil {
			return nil, fmt.Errorf("registry section %q has no url key", section.Name())
		}
		names[key.String()] = section.Name()
	}

	return &Registry{names: names}, nil
}

// DisplayName returns the registered name for an upstream URL, or
// UnknownRepoName when the URL is not registered.
func (r *Registry) DisplayName(url string) string {
	if name, ok := r.names[url]; ok {
		return name
	}
	return UnknownRepoName
}

// Len returns the number of registered repositories.
func (r *Registry) Len() int {
	return len(r.names)
}

// ResolvePath resolves the registry file location: an absolute path is used
// as given, anything else is relative to the base directory.
func ResolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
