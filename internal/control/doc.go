// Package control implements the outside view of a running instance:
// liveness-checked status and the cooperative stop protocol.
package control
