// Package filelock guards report files against two writers at once.
//
// Locks are advisory and live in a sidecar "<path>.lock" file, so the guarded
// file itself can still be truncated and rewritten freely while locked.
package filelock

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by WithLock when another process holds the lock.
var ErrLocked = errors.New("filelock: file is locked by another process")

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held by another process.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// LockPath returns the sidecar lock path used for target.
// Example: writing to "App.txt" uses lock file "App.txt.lock"
func LockPath(target string) string {
	return target + ".lock"
}

// WithLock runs fn while holding the sidecar lock for target and removes the
// lock file afterwards. It fails with ErrLocked instead of waiting when the
// lock is already held.
func WithLock(target string, fn func() error) (err error) {
	lock := NewFileLock(LockPath(target))

	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("%w: %s", ErrLocked, target)
	}

	defer func() {
		unlockErr := lock.Unlock()
		os.Remove(lock.Path())
		if err == nil {
			err = unlockErr
		}
	}()

	return fn()
}
