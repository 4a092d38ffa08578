package errors

import "fmt"

// ConfigurationError indicates a required input is missing or invalid.
// Setting names the environment variable or settings-file key involved.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Setting, e.Reason)
}

// DecryptionError indicates the encryption collaborator failed or its
// output could not be used. Path names the file involved (key file,
// ciphertext, or plaintext, depending on the operation).
type DecryptionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decryption error: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("decryption error: %s: %s", e.Path, e.Reason)
}

func (e *DecryptionError) Unwrap() error { return e.Err }

// KeyGenerationError indicates a key file could not be generated, either
// because the destination already exists or the collaborator failed.
type KeyGenerationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *KeyGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("key generation error: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("key generation error: %s: %s", e.Path, e.Reason)
}

func (e *KeyGenerationError) Unwrap() error { return e.Err }

// MissingSecretError indicates a template references a secret that is not
// present in the decrypted mapping. The whole batch aborts on the first
// occurrence; no output files are written.
type MissingSecretError struct {
	Name string
	File string
}

func (e *MissingSecretError) Error() string {
	return fmt.Sprintf("missing secret %q referenced by %s", e.Name, e.File)
}

// IOError indicates a filesystem operation failed while reading a template
// or materializing a rendered file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
