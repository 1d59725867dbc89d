package pidlock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func newTestLock(t *testing.T) *Lock {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "synco.pid"))
}

func TestIsRunningAbsentRecord(t *testing.T) {
	lock := newTestLock(t)
	if lock.IsRunning() {
		t.Fatal("expected absent record to read as not running")
	}
}

func TestIsRunningLivePID(t *testing.T) {
	lock := newTestLock(t)
	if err := os.WriteFile(lock.Path(), []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}

	if !lock.IsRunning() {
		t.Fatal("expected live pid to read as running")
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("expected record to survive a live-pid check: %v", err)
	}
}

func TestIsRunningStaleRecordRemoved(t *testing.T) {
	lock := newTestLock(t)
	if err := os.WriteFile(lock.Path(), []byte("1073741824\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}

	if lock.IsRunning() {
		t.Fatal("expected dead pid to read as not running")
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Fatal("expected stale record to be removed")
	}
	// Idempotent: a second check finds nothing and stays quiet.
	if lock.IsRunning() {
		t.Fatal("expected second check to remain not running")
	}
}

func TestIsRunningCorruptRecordRemoved(t *testing.T) {
	lock := newTestLock(t)
	if err := os.WriteFile(lock.Path(), []byte("not-a-pid\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}

	if lock.IsRunning() {
		t.Fatal("expected corrupt record to read as not running")
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Fatal("expected corrupt record to be removed")
	}
}

func TestAcquireRoundTrip(t *testing.T) {
	lock := newTestLock(t)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	t.Cleanup(func() { _ = lock.Release() })

	pid, err := lock.Read()
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if pid != os.Getpid() {
		t.Fatalf("recorded pid %d, want %d", pid, os.Getpid())
	}
	if !lock.IsRunning() {
		t.Fatal("expected IsRunning true after Acquire")
	}
}

func TestAcquireRecoversStaleRecord(t *testing.T) {
	lock := newTestLock(t)
	if err := os.WriteFile(lock.Path(), []byte("1073741824\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire over stale record returned error: %v", err)
	}
	t.Cleanup(func() { _ = lock.Release() })

	pid, err := lock.Read()
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if pid != os.Getpid() {
		t.Fatalf("recorded pid %d, want %d", pid, os.Getpid())
	}
}

func TestAcquireFailsWhenOwnedByLivePID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synco.pid")
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}

	// A fresh Lock so the guard is not already held by this test.
	lock := New(path)
	err := lock.Acquire()
	if err != ErrAlreadyRunning {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestReleaseAbsentRecordIsNoOp(t *testing.T) {
	lock := newTestLock(t)
	if err := lock.Release(); err != nil {
		t.Fatalf("Release on absent record returned error: %v", err)
	}
}

func TestReadRejectsCorruptContent(t *testing.T) {
	lock := newTestLock(t)
	for _, content := range []string{"", "zero\n", "-4\n"} {
		if err := os.WriteFile(lock.Path(), []byte(content), 0o644); err != nil {
			t.Fatalf("write pid file: %v", err)
		}
		if _, err := lock.Read(); err == nil {
			t.Fatalf("expected parse error for %q", strings.TrimSpace(content))
		}
	}
}
