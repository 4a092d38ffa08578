package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/crypto/nacl/secretbox"

	derrors "github.com/igor47/dcsm/internal/errors"
)

// MemoryCipher is an in-process Cipher backed by NaCl secretbox. The
// symmetric key is derived from the key file's content, so any file works
// as an identity. It exists so the rendering pipeline can be exercised
// without the age binary installed.
type MemoryCipher struct{}

// Decrypt returns the plaintext of ciphertextPath.
func (MemoryCipher) Decrypt(keyPath, ciphertextPath string) ([]byte, error) {
	key, err := memoryKey(keyPath)
	if err != nil {
		return nil, err
	}

	ciphertext, err := os.ReadFile(ciphertextPath)
	if err != nil {
		return nil, &derrors.DecryptionError{Path: ciphertextPath, Reason: "ciphertext is unreadable", Err: err}
	}
	if len(ciphertext) < 24 {
		return nil, &derrors.DecryptionError{Path: ciphertextPath, Reason: "ciphertext is truncated"}
	}

	var nonce [24]byte
	copy(nonce[:], ciphertext[:24])

	plaintext, ok := secretbox.Open(nil, ciphertext[24:], &nonce, &key)
	if !ok {
		return nil, &derrors.DecryptionError{Path: ciphertextPath, Reason: "ciphertext could not be opened with this key"}
	}
	return plaintext, nil
}

// DecryptTo writes the plaintext of ciphertextPath to plaintextPath.
func (m MemoryCipher) DecryptTo(keyPath, ciphertextPath, plaintextPath string) error {
	plaintext, err := m.Decrypt(keyPath, ciphertextPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(plaintextPath, plaintext, 0600); err != nil {
		return &derrors.IOError{Op: "write", Path: plaintextPath, Err: err}
	}
	return nil
}

// Encrypt writes the ciphertext of plaintextPath to ciphertextPath.
func (MemoryCipher) Encrypt(keyPath, plaintextPath, ciphertextPath string) error {
	key, err := memoryKey(keyPath)
	if err != nil {
		return err
	}

	plaintext, err := os.ReadFile(plaintextPath)
	if err != nil {
		return &derrors.DecryptionError{Path: plaintextPath, Reason: "plaintext is unreadable", Err: err}
	}

	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return &derrors.DecryptionError{Path: plaintextPath, Reason: "could not generate nonce", Err: err}
	}

	ciphertext := secretbox.Seal(nonce[:], plaintext, &nonce, &key)
	if err := os.WriteFile(ciphertextPath, ciphertext, 0600); err != nil {
		return &derrors.IOError{Op: "write", Path: ciphertextPath, Err: err}
	}
	return nil
}

// GenerateKey writes 32 random bytes, hex encoded, to keyPath.
func (MemoryCipher) GenerateKey(keyPath string) error {
	material := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, material); err != nil {
		return &derrors.KeyGenerationError{Path: keyPath, Reason: "could not generate key material", Err: err}
	}
	encoded := hex.EncodeToString(material) + "\n"
	if err := os.WriteFile(keyPath, []byte(encoded), 0600); err != nil {
		return &derrors.KeyGenerationError{Path: keyPath, Reason: "could not write key file", Err: err}
	}
	return nil
}

func memoryKey(keyPath string) ([32]byte, error) {
	material, err := os.ReadFile(keyPath)
	if err != nil {
		return [32]byte{}, &derrors.DecryptionError{Path: keyPath, Reason: "key file is unreadable", Err: err}
	}
	return sha256.Sum256(material), nil
}
