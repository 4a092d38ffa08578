// Package secrets loads the encrypted secret store.
//
// The asymmetric primitive itself is never implemented here. All key
// generation, encryption, and decryption goes through the Cipher interface,
// whose production implementation (AgeCipher) shells out to the age and
// age-keygen binaries exactly as the deployment images do. MemoryCipher is
// a self-contained secretbox implementation with the same contract, used by
// tests and available when the binaries are not installed.
//
// Decrypted plaintext is a flat YAML document of name: value records. One
// level, no nesting; scalar values are coerced to text. The parsed mapping
// lives only for the duration of the run.
package secrets
