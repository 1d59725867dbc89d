package pidlock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"synco/internal/proc"
)

// ErrAlreadyRunning indicates another live instance owns the lock.
var ErrAlreadyRunning = errors.New("another synco instance is already running")

// Lock is a PID-file based instance lock. The record is a plain-text
// integer naming the owning process; a record pointing at a dead
// process is stale and treated as absent.
type Lock struct {
	path  string
	guard *flock.Flock
}

// New constructs a lock around the given PID file path. The adjacent
// "<path>.lock" flock guard serializes concurrent acquire attempts.
func New(path string) *Lock {
	return &Lock{
		path:  path,
		guard: flock.New(path + ".lock"),
	}
}

// Path returns the PID file location.
func (l *Lock) Path() string {
	return l.path
}

// Read parses the recorded owner PID.
func (l *Lock) Read() (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, fmt.Errorf("read pid file %q: %w", l.path, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("pid file %q holds no valid pid", l.path)
	}
	return pid, nil
}

// IsRunning reports whether a live instance owns the lock. This is not
// a pure query: a stale or corrupt record is removed as a side effect
// so the next acquire attempt starts clean.
func (l *Lock) IsRunning() bool {
	pid, err := l.Read()
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	if err == nil && proc.Alive(pid) {
		return true
	}
	// Stale or unreadable record.
	_ = os.Remove(l.path)
	return false
}

// Acquire records the current process as the lock owner. The record is
// created with O_EXCL so check-and-act is a single atomic step; when
// the record already exists, one stale-detection pass runs and the
// exclusive create is retried exactly once. The flock guard is held
// until Release so two starters cannot interleave stale recovery.
func (l *Lock) Acquire() error {
	ok, err := l.guard.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock guard: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}

	if err := l.writeExclusive(); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			_ = l.guard.Unlock()
			return err
		}
		if l.IsRunning() {
			_ = l.guard.Unlock()
			return ErrAlreadyRunning
		}
		if err := l.writeExclusive(); err != nil {
			_ = l.guard.Unlock()
			if errors.Is(err, fs.ErrExist) {
				return ErrAlreadyRunning
			}
			return err
		}
	}
	return nil
}

// Release removes the lock record and drops the flock guard. Releasing
// an absent lock is a no-op.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove pid file %q: %w", l.path, err)
	}
	if err := l.guard.Unlock(); err != nil {
		return fmt.Errorf("release lock guard: %w", err)
	}
	return nil
}

func (l *Lock) writeExclusive() error {
	file, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create pid file %q: %w", l.path, err)
	}
	_, writeErr := file.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	closeErr := file.Close()
	if writeErr != nil {
		_ = os.Remove(l.path)
		return fmt.Errorf("write pid file %q: %w", l.path, writeErr)
	}
	if closeErr != nil {
		_ = os.Remove(l.path)
		return fmt.Errorf("close pid file %q: %w", l.path, closeErr)
	}
	return nil
}
