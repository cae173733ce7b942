// pattern: Functional Core

package forks

// UpstreamRemote is the conventional name of the remote pointing at the
// canonical repository; OriginRemote is the fork's own copy.
const (
	UpstreamRemote = "upstream"
	OriginRemote   = "origin"
)

// Fork is a local clone tracked as a candidate for rebasing.
type Fork struct {
	Name    string            // Directory name (used as display name and row key)
	Path    string            // Absolute path to the clone
	Remotes map[string]string // Remote name → URL, push-capable entries only
	Branch  string            // Branch checked out at discovery time
}

// Origin returns the URL of the fork's origin remote, or "" if undefined.
func (f *Fork) Origin() string {
	return f.Remotes[OriginRemote]
}

// Upstream returns the URL of the fork's upstream remote, or "" if undefined.
func (f *Fork) Upstream() string {
	return f.Remotes[UpstreamRemote]
}
