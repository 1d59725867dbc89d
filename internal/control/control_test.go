package control

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"synco/internal/pidlock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLock(t *testing.T) *pidlock.Lock {
	t.Helper()
	return pidlock.New(filepath.Join(t.TempDir(), "synco.pid"))
}

func captureTerminate(t *testing.T, fail bool) *[]int {
	t.Helper()
	var signaled []int
	original := terminate
	terminate = func(pid int) error {
		signaled = append(signaled, pid)
		if fail {
			return errors.New("operation not permitted")
		}
		return nil
	}
	t.Cleanup(func() { terminate = original })
	return &signaled
}

func TestStopWithoutRecord(t *testing.T) {
	lock := newTestLock(t)
	signaled := captureTerminate(t, false)

	if err := Stop(lock, discardLogger()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if len(*signaled) != 0 {
		t.Fatalf("expected no signal send, got %v", *signaled)
	}
}

func TestStopCorruptRecordRemoved(t *testing.T) {
	lock := newTestLock(t)
	signaled := captureTerminate(t, false)
	if err := os.WriteFile(lock.Path(), []byte("garbage\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}

	if err := Stop(lock, discardLogger()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if len(*signaled) != 0 {
		t.Fatalf("expected no signal send, got %v", *signaled)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Fatal("expected corrupt record to be removed")
	}
}

func TestStopSignalsAndRemovesRecord(t *testing.T) {
	lock := newTestLock(t)
	signaled := captureTerminate(t, false)
	if err := os.WriteFile(lock.Path(), []byte("4242\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}

	if err := Stop(lock, discardLogger()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if len(*signaled) != 1 || (*signaled)[0] != 4242 {
		t.Fatalf("expected SIGTERM for pid 4242, got %v", *signaled)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Fatal("expected record removed after stop")
	}
}

func TestStopSignalFailureStillRemovesRecord(t *testing.T) {
	lock := newTestLock(t)
	captureTerminate(t, true)
	if err := os.WriteFile(lock.Path(), []byte("4242\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}

	if err := Stop(lock, discardLogger()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Fatal("expected record removed despite signal failure")
	}
}

func TestInspectStates(t *testing.T) {
	lock := newTestLock(t)

	status := Inspect(lock)
	if status.Running {
		t.Fatal("expected not running without a record")
	}

	if err := os.WriteFile(lock.Path(), []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}
	status = Inspect(lock)
	if !status.Running || status.PID != os.Getpid() {
		t.Fatalf("unexpected status %+v", status)
	}

	if err := os.WriteFile(lock.Path(), []byte("1073741824\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}
	status = Inspect(lock)
	if status.Running {
		t.Fatal("expected stale record to read as not running")
	}
}
