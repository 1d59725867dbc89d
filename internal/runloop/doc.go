// Package runloop orchestrates the sync cycle: acquire the instance
// lock, run sync passes on a fixed interval (or once), release the
// lock. Cancellation is cooperative through the context, so shutdown
// behaves the same under a signal, a stop request, or a test.
package runloop
