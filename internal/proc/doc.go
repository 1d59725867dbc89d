// Package proc provides the process liveness probe and graceful
// termination signal used by the instance lock and stop control.
package proc
