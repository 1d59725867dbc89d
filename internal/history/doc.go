// Package history persists sync run outcomes in a small SQLite
// database so past invocations can be inspected after the fact.
// Recording is best-effort: the run loop treats a broken history store
// as a log line, never as a reason to stop syncing.
package history
