package secrets

// Cipher is the boundary to the asymmetric encryption primitive. DCSM never
// implements the primitive itself; it only needs these four fallible
// operations. AgeCipher is the production implementation, MemoryCipher the
// in-process one used by tests and offline development.
type Cipher interface {
	// Decrypt returns the plaintext of ciphertextPath.
	Decrypt(keyPath, ciphertextPath string) ([]byte, error)

	// DecryptTo writes the plaintext of ciphertextPath to plaintextPath.
	DecryptTo(keyPath, ciphertextPath, plaintextPath string) error

	// Encrypt writes the ciphertext of plaintextPath to ciphertextPath.
	Encrypt(keyPath, plaintextPath, ciphertextPath string) error

	// GenerateKey writes fresh private key material to keyPath.
	GenerateKey(keyPath string) error
}
