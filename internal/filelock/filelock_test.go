package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}

	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestTryLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	first := NewFileLock(lockPath)
	acquired, err := first.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Fatal("Expected first TryLock to succeed")
	}
	defer first.Unlock()

	second := NewFileLock(lockPath)
	acquired, err = second.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if acquired {
		second.Unlock()
		t.Fatal("Expected second TryLock to fail while lock is held")
	}
}

func TestLockPath(t *testing.T) {
	if got := LockPath("/out/App.txt"); got != "/out/App.txt.lock" {
		t.Errorf("LockPath() = %s, want /out/App.txt.lock", got)
	}
}

func TestWithLock(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "App.txt")

	called := false
	err := WithLock(target, func() error {
		called = true
		if _, err := os.Stat(LockPath(target)); err != nil {
			t.Errorf("Expected lock file to exist while locked: %v", err)
		}
		return os.WriteFile(target, []byte("data"), 0644)
	})
	if err != nil {
		t.Fatalf("WithLock failed: %v", err)
	}
	if !called {
		t.Fatal("Expected callback to run")
	}

	if _, err := os.Stat(LockPath(target)); !os.IsNotExist(err) {
		t.Errorf("Expected lock file to be removed, stat err = %v", err)
	}
}

func TestWithLock_PropagatesCallbackError(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "App.txt")
	sentinel := errors.New("write failed")

	err := WithLock(target, func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected callback error, got %v", err)
	}

	if _, err := os.Stat(LockPath(target)); !os.IsNotExist(err) {
		t.Errorf("Expected lock file to be removed after failure, stat err = %v", err)
	}
}

func TestWithLock_AlreadyLocked(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "App.txt")

	holder := NewFileLock(LockPath(target))
	acquired, err := holder.TryLock()
	if err != nil || !acquired {
		t.Fatalf("Failed to pre-acquire lock: acquired=%v err=%v", acquired, err)
	}
	defer holder.Unlock()

	called := false
	err = WithLock(target, func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Expected ErrLocked, got %v", err)
	}
	if called {
		t.Error("Callback must not run when the lock is held")
	}
}
