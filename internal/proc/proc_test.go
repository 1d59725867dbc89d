package proc

import (
	"os"
	"testing"
)

func TestAliveSelf(t *testing.T) {
	if !Alive(os.Getpid()) {
		t.Fatal("expected current process to be alive")
	}
}

func TestAliveRejectsNonPositivePIDs(t *testing.T) {
	for _, pid := range []int{0, -1, -42} {
		if Alive(pid) {
			t.Fatalf("expected Alive(%d) to be false", pid)
		}
	}
}

func TestAliveNonexistentPID(t *testing.T) {
	// Far beyond the default kernel pid_max, so it cannot exist.
	if Alive(1 << 30) {
		t.Fatal("expected nonexistent pid to read as dead")
	}
}

func TestTerminateInvalidPID(t *testing.T) {
	if err := Terminate(0); err == nil {
		t.Fatal("expected error for pid 0")
	}
	if err := Terminate(1 << 30); err == nil {
		t.Fatal("expected error for nonexistent pid")
	}
}
