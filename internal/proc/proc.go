package proc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Alive reports whether a process with the given PID currently exists.
// It sends signal 0, which performs the kernel-side existence check
// without delivering anything. Every probe failure collapses to false:
// a PID we cannot signal (ESRCH, EPERM) counts as dead.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return unix.Kill(pid, 0) == nil
}

// Terminate asks the process to shut down gracefully via SIGTERM.
func Terminate(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid %d", pid)
	}
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}
	return nil
}
