// Package main hosts the synco CLI entrypoint and command graph.
//
// The Cobra command tree surfaces the run loop, the PID-file stop
// protocol, status inspection, run history, and configuration
// scaffolding. Wiring lives here; the behavior lives in the internal
// packages.
package main
