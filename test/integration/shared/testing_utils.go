// Package shared contains testing utilities shared between integration
// tests. It provides helpers for executing dcsm commands and capturing
// their output.
package shared

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/igor47/dcsm/cmd"
	"github.com/igor47/dcsm/internal/secrets"
)

// UseMemoryCipher swaps the CLI's encryption collaborator for the
// in-process cipher so integration tests never need the age binary.
func UseMemoryCipher(t *testing.T) {
	t.Helper()
	restore := cmd.SetCipher(secrets.MemoryCipher{})
	t.Cleanup(restore)
}

// ExecuteCommand runs the dcsm root command with the given arguments,
// returning everything written to stdout and stderr.
func ExecuteCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd.ResetGlobalState()
	cmd.RootCmd.SetArgs(args)
	return CaptureOutput(func() error {
		return cmd.RootCmd.Execute()
	})
}

// SetupStore creates a key file and an encrypted store holding yamlDoc in
// a fresh temp dir, pointing the DCSM environment at them.
func SetupStore(t *testing.T, yamlDoc string) (keyPath, storePath string) {
	t.Helper()
	tmpDir := t.TempDir()

	keyPath = filepath.Join(tmpDir, "key.txt")
	plainPath := filepath.Join(tmpDir, "secrets.yaml")
	storePath = filepath.Join(tmpDir, "secrets.yaml.enc")

	cipher := secrets.MemoryCipher{}
	if err := cipher.GenerateKey(keyPath); err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	if err := os.WriteFile(plainPath, []byte(yamlDoc), 0600); err != nil {
		t.Fatalf("Failed to write plaintext: %v", err)
	}
	if err := cipher.Encrypt(keyPath, plainPath, storePath); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if err := os.Remove(plainPath); err != nil {
		t.Fatalf("Failed to remove plaintext: %v", err)
	}

	t.Setenv("DCSM_KEYFILE", keyPath)
	t.Setenv("DCSM_SECRETS_FILE", storePath)
	return keyPath, storePath
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	reader, writer, err := os.Pipe()
	if err != nil {
		return "", err
	}

	os.Stdout = writer
	os.Stderr = writer

	outputChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, reader)
		outputChan <- buf.String()
	}()

	fnErr := fn()

	writer.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-outputChan, fnErr
}
