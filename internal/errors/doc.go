// Package errors provides typed error values for DCSM.
//
// Every failure in the pipeline is one of a closed set of error kinds, each
// naming the specific resource involved (a file path, a secret name, or a
// configuration entry). Callers match on the concrete type with errors.As()
// rather than string matching.
//
// # Error Categories
//
//   - ConfigurationError: a required input is missing or invalid
//   - DecryptionError: the encryption collaborator failed or produced
//     unusable output
//   - KeyGenerationError: a key file could not be generated
//   - MissingSecretError: a template references an undefined secret
//   - IOError: a filesystem operation failed
//
// All errors are fatal. Nothing is retried automatically; the operator
// fixes the underlying cause and re-invokes the pipeline, which is safe to
// repeat because rendering is idempotent.
package errors
