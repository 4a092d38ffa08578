// Package workflows implements the four DCSM commands as testable
// functions, decoupled from the CLI layer.
//
// Each workflow takes the resolved run configuration, a secrets.Cipher, and
// a logger, validates its own preconditions, and returns a typed result.
// Workflows are terminal: nothing retries, and each process invocation runs
// exactly one of them.
package workflows
