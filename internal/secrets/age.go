package secrets

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	derrors "github.com/igor47/dcsm/internal/errors"
)

// AgeCipher shells out to the age and age-keygen binaries. The subprocess
// runs with an empty environment so nothing ambient leaks into the
// collaborator. There is no internal timeout; the run is supervised
// externally.
type AgeCipher struct {
	AgeBinary    string
	KeygenBinary string
}

// NewAgeCipher returns an AgeCipher that resolves the binaries from PATH.
func NewAgeCipher() *AgeCipher {
	return &AgeCipher{AgeBinary: "age", KeygenBinary: "age-keygen"}
}

// Decrypt returns the plaintext of ciphertextPath, captured from the
// collaborator's stdout.
func (a *AgeCipher) Decrypt(keyPath, ciphertextPath string) ([]byte, error) {
	out, err := a.run(a.AgeBinary, "--decrypt", "--identity", keyPath, ciphertextPath)
	if err != nil {
		return nil, &derrors.DecryptionError{Path: ciphertextPath, Reason: "age decryption failed", Err: err}
	}
	return out, nil
}

// DecryptTo writes the plaintext of ciphertextPath to plaintextPath.
func (a *AgeCipher) DecryptTo(keyPath, ciphertextPath, plaintextPath string) error {
	_, err := a.run(a.AgeBinary, "--decrypt", "--identity", keyPath, "--output", plaintextPath, ciphertextPath)
	if err != nil {
		return &derrors.DecryptionError{Path: ciphertextPath, Reason: "age decryption failed", Err: err}
	}
	return nil
}

// Encrypt writes the ciphertext of plaintextPath to ciphertextPath.
func (a *AgeCipher) Encrypt(keyPath, plaintextPath, ciphertextPath string) error {
	_, err := a.run(a.AgeBinary, "--encrypt", "--identity", keyPath, "--output", ciphertextPath, plaintextPath)
	if err != nil {
		return &derrors.DecryptionError{Path: plaintextPath, Reason: "age encryption failed", Err: err}
	}
	return nil
}

// GenerateKey writes a fresh age identity to keyPath.
func (a *AgeCipher) GenerateKey(keyPath string) error {
	if _, err := a.run(a.KeygenBinary, "--output", keyPath); err != nil {
		return &derrors.KeyGenerationError{Path: keyPath, Reason: "age-keygen failed", Err: err}
	}
	return nil
}

func (a *AgeCipher) run(binary string, args ...string) ([]byte, error) {
	cmd := exec.Command(binary, args...)
	cmd.Env = []string{}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
