// pattern: Imperative Shell

package instance

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "forkrebase.lock"

// Lock acquires an exclusive file lock scoped to one base directory.
// Two instances force-pushing the same forks at once must be impossible;
// the lock is held for the lifetime of the process.
func Lock(dataDir string) (*flock.Flock, error) {
	lockPath := filepath.Join(dataDir, lockFileName)
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another forkrebase instance is already running for this base directory")
	}
	return fl, nil
}

// Release unlocks the instance lock.
func Release(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}
