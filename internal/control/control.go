package control

import (
	"errors"
	"io/fs"
	"log/slog"

	"synco/internal/pidlock"
	"synco/internal/proc"
)

var terminate = proc.Terminate

// Status describes the supervised instance as seen from outside.
type Status struct {
	Running bool
	PID     int
	PIDFile string
}

// Inspect returns the current instance state. The underlying liveness
// check removes stale records as a side effect.
func Inspect(lock *pidlock.Lock) Status {
	status := Status{PIDFile: lock.Path()}
	if !lock.IsRunning() {
		return status
	}
	pid, err := lock.Read()
	if err != nil {
		return status
	}
	status.Running = true
	status.PID = pid
	return status
}

// Stop asks the running instance to shut down. The contract is
// optimistic: the termination signal is sent best-effort and the lock
// record is removed regardless of delivery, without confirming the
// target actually exits. A target that ignores SIGTERM keeps running
// until the next start attempt detects the stale state and self-heals.
//
// Absence of a lock record, a corrupt record, and a failed signal all
// degrade to log lines; none are errors to the caller.
func Stop(lock *pidlock.Lock, logger *slog.Logger) error {
	pid, err := lock.Read()
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("not running", slog.String("pid_file", lock.Path()))
		return nil
	}
	if err != nil {
		logger.Warn("unreadable pid file, removing", slog.Any("error", err))
		return lock.Release()
	}

	logger.Info("sending SIGTERM", slog.Int("pid", pid))
	if err := terminate(pid); err != nil {
		logger.Warn("failed to signal process", slog.Any("error", err))
	}

	if err := lock.Release(); err != nil {
		return err
	}
	logger.Info("stop requested", slog.Int("pid", pid))
	return nil
}
