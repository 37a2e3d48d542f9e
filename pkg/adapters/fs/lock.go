package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	// DefaultLockTimeout bounds how long a mutation waits for the document lock.
	DefaultLockTimeout = 2 * time.Second

	lockRetryInterval = 10 * time.Millisecond
)

var errLockTimeout = errors.New("timed out waiting for lock")

// fileLock is a sidecar lock file created with O_EXCL.
// Holding it grants the single-writer right over the document.
type fileLock struct {
	path    string
	timeout time.Duration
}

func newFileLock(docPath string, timeout time.Duration) *fileLock {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return &fileLock{path: docPath + ".lock", timeout: timeout}
}

// Acquire blocks until the lock file could be created, the timeout expires
// or ctx is done. The returned function releases the lock.
func (l *fileLock) Acquire(ctx context.Context) (func(), error) {
	deadline := time.Now().Add(l.timeout)

	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() {
				os.Remove(l.path)
			}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w %s", errLockTimeout, l.path)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}
