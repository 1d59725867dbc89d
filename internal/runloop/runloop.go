package runloop

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"synco/internal/config"
	"synco/internal/history"
	"synco/internal/pidlock"
)

// DefaultInterval is the pause between sync cycles when none is configured.
const DefaultInterval = 60 * time.Second

// Syncer executes one synchronization pass and returns its exit status.
type Syncer interface {
	Sync(ctx context.Context) (int, error)
}

// SyncFunc adapts a function to the Syncer interface.
type SyncFunc func(ctx context.Context) (int, error)

// Sync implements Syncer.
func (f SyncFunc) Sync(ctx context.Context) (int, error) {
	return f(ctx)
}

// Options controls run loop behavior.
type Options struct {
	// Interval is the pause between cycles; DefaultInterval when zero.
	Interval time.Duration
	// Once runs a single sync pass and exits.
	Once bool
	// NoPIDFile suppresses lock creation, for debugging.
	NoPIDFile bool
}

// Runner drives the sync loop while holding the instance lock.
type Runner struct {
	lock   *pidlock.Lock
	syncer Syncer
	store  *history.Store
	logger *slog.Logger
	opts   Options

	local  string
	remote string
}

// New constructs a Runner. The history store may be nil; outcomes are
// then only logged.
func New(cfg *config.Config, lock *pidlock.Lock, syncer Syncer, store *history.Store, logger *slog.Logger, opts Options) *Runner {
	return &Runner{
		lock:   lock,
		syncer: syncer,
		store:  store,
		logger: logger,
		opts:   opts,
		local:  cfg.Local,
		remote: cfg.Remote,
	}
}

// Run executes the sync loop until the context is canceled, or exactly
// once in once mode. It returns pidlock.ErrAlreadyRunning when another
// live instance owns the lock; callers treat that as benign. The lock
// is released on every exit path, including interruption.
func (r *Runner) Run(ctx context.Context) error {
	if r.lock.IsRunning() {
		return pidlock.ErrAlreadyRunning
	}

	if !r.opts.NoPIDFile {
		if err := r.lock.Acquire(); err != nil {
			return err
		}
		defer func() {
			if err := r.lock.Release(); err != nil {
				r.logger.Warn("release instance lock", slog.Any("error", err))
			}
		}()
		r.logger.Info("instance lock acquired", slog.String("pid_file", r.lock.Path()))
	}

	interval := r.opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	for {
		r.syncOnce(ctx)

		if r.opts.Once {
			return nil
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("interrupted, shutting down")
			return nil
		case <-timer.C:
		}
	}
}

// syncOnce runs a single sync pass. Every failure mode degrades to a
// log line; the loop never stops because a pass went wrong.
func (r *Runner) syncOnce(ctx context.Context) {
	run := history.NewRun(r.local, r.remote)
	r.logger.Info("sync started",
		slog.String("run_id", run.ID),
		slog.String("local", r.local),
		slog.String("remote", r.remote),
	)

	code, err := r.syncer.Sync(ctx)
	run.FinishedAt = time.Now().UTC()
	run.ExitCode = code

	switch {
	case err != nil:
		if run.ExitCode == 0 {
			run.ExitCode = -1
		}
		r.logger.Error("sync failed",
			slog.String("run_id", run.ID),
			slog.Any("error", err),
		)
	case code == 0:
		r.logger.Info("sync finished",
			slog.String("run_id", run.ID),
			slog.Duration("duration", run.Duration()),
		)
	default:
		r.logger.Warn("sync finished with errors",
			slog.String("run_id", run.ID),
			slog.Int("exit_code", code),
			slog.Duration("duration", run.Duration()),
		)
	}

	if r.store == nil {
		return
	}
	// Interrupted runs still get recorded.
	if err := r.store.Record(context.WithoutCancel(ctx), run); err != nil {
		r.logger.Warn("record run history", slog.Any("error", err))
	}
}

// IsBenign reports whether a Run error is an expected, zero-exit
// condition rather than a failure.
func IsBenign(err error) bool {
	return errors.Is(err, pidlock.ErrAlreadyRunning)
}
