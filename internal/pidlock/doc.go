// Package pidlock enforces the at-most-one-instance invariant through
// a PID file plus an flock guard.
//
// The PID file is the instance record other processes inspect and
// signal; the flock guard only serializes acquire attempts so stale
// recovery and the exclusive create cannot interleave between two
// starters. A record naming a dead process is stale and is removed the
// next time anyone asks whether an instance is running.
package pidlock
