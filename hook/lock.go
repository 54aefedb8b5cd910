package hook

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned when another watcher holds the lock
var ErrAlreadyRunning = errors.New("another watcher is already running")

// Lock takes an exclusive, non-blocking lock on path. The returned function
// releases it.
func Lock(path string) (func() error, error) {
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, path)
	}

	return lock.Unlock, nil
}
