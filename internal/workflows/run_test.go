package workflows

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/igor47/dcsm/internal/audit"
	"github.com/igor47/dcsm/internal/configs"
	derrors "github.com/igor47/dcsm/internal/errors"
	logger "github.com/igor47/dcsm/internal/logging"
	"github.com/igor47/dcsm/internal/secrets"
)

var testLogger = logger.Logger{}

// setupStore creates a key file and an encrypted secret store holding the
// given YAML document, returning a config pointing at both.
func setupStore(t *testing.T, yamlDoc string) *configs.Config {
	t.Helper()
	tmpDir := t.TempDir()

	keyPath := filepath.Join(tmpDir, "key.txt")
	plainPath := filepath.Join(tmpDir, "secrets.yaml")
	cipherPath := filepath.Join(tmpDir, "secrets.yaml.enc")

	cipher := secrets.MemoryCipher{}
	if err := cipher.GenerateKey(keyPath); err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	if err := os.WriteFile(plainPath, []byte(yamlDoc), 0600); err != nil {
		t.Fatalf("Failed to write plaintext: %v", err)
	}
	if err := cipher.Encrypt(keyPath, plainPath, cipherPath); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if err := os.Remove(plainPath); err != nil {
		t.Fatalf("Failed to remove plaintext: %v", err)
	}

	return &configs.Config{KeyFile: keyPath, SecretsFile: cipherPath}
}

func writeTemplate(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create template dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to write template: %v", err)
	}
}

func TestRun_SubstitutionCorrectness(t *testing.T) {
	cfg := setupStore(t, "TEST: expected string\n")

	templateDir := t.TempDir()
	writeTemplate(t, filepath.Join(templateDir, "test.template"), "$DCSM{TEST}")
	cfg.TemplateDirs = []string{templateDir}

	result, err := Run(cfg, secrets.MemoryCipher{}, testLogger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Rendered) != 1 {
		t.Fatalf("Expected 1 rendered file, got %d", len(result.Rendered))
	}

	data, err := os.ReadFile(filepath.Join(templateDir, "test"))
	if err != nil {
		t.Fatalf("Rendered file missing: %v", err)
	}
	if string(data) != "expected string" {
		t.Errorf("Expected %q, got %q", "expected string", data)
	}
}

func TestRun_MissingSecretAbortsBatch(t *testing.T) {
	cfg := setupStore(t, "PRESENT: yes\n")

	templateDir := t.TempDir()
	writeTemplate(t, filepath.Join(templateDir, "a.conf.template"), "value: $DCSM{PRESENT}")
	writeTemplate(t, filepath.Join(templateDir, "b.conf.template"), "value: $DCSM{ABSENT}")
	cfg.TemplateDirs = []string{templateDir}

	_, err := Run(cfg, secrets.MemoryCipher{}, testLogger)
	if err == nil {
		t.Fatal("Expected run to fail on missing secret")
	}

	var missing *derrors.MissingSecretError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingSecretError, got %T: %v", err, err)
	}
	if missing.Name != "ABSENT" {
		t.Errorf("Expected missing secret ABSENT, got %q", missing.Name)
	}

	// Neither output may exist, including the one that rendered cleanly.
	for _, name := range []string{"a.conf", "b.conf"} {
		if _, err := os.Stat(filepath.Join(templateDir, name)); !os.IsNotExist(err) {
			t.Errorf("Output file %s should not exist after aborted batch", name)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	cfg := setupStore(t, "TOKEN: abc123\n")

	templateDir := t.TempDir()
	tmplPath := filepath.Join(templateDir, "app.conf.template")
	writeTemplate(t, tmplPath, "token = $DCSM{TOKEN}\n")
	if err := os.Chmod(tmplPath, 0640); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}
	cfg.TemplateDirs = []string{templateDir}

	var firstContent []byte
	var firstMode os.FileMode
	for i := 0; i < 2; i++ {
		if _, err := Run(cfg, secrets.MemoryCipher{}, testLogger); err != nil {
			t.Fatalf("Run %d failed: %v", i+1, err)
		}

		data, err := os.ReadFile(filepath.Join(templateDir, "app.conf"))
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		info, err := os.Stat(filepath.Join(templateDir, "app.conf"))
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}

		if i == 0 {
			firstContent = data
			firstMode = info.Mode().Perm()
		} else {
			if string(data) != string(firstContent) {
				t.Errorf("Re-run produced different content: %q vs %q", data, firstContent)
			}
			if info.Mode().Perm() != firstMode {
				t.Errorf("Re-run produced different mode: %o vs %o", info.Mode().Perm(), firstMode)
			}
		}
	}

	if firstMode != 0640 {
		t.Errorf("Rendered file mode %o does not match template", firstMode)
	}
}

func TestRun_MultipleTemplateDirectories(t *testing.T) {
	cfg := setupStore(t, "A: one\nB: two\n")

	dirA := t.TempDir()
	dirB := t.TempDir()
	writeTemplate(t, filepath.Join(dirA, "a.template"), "$DCSM{A}")
	writeTemplate(t, filepath.Join(dirB, "nested", "b.template"), "$DCSM{B}")
	cfg.TemplateDirs = []string{dirA, dirB}

	result, err := Run(cfg, secrets.MemoryCipher{}, testLogger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Rendered) != 2 {
		t.Fatalf("Expected 2 rendered files, got %v", result.Rendered)
	}

	data, _ := os.ReadFile(filepath.Join(dirB, "nested", "b"))
	if string(data) != "two" {
		t.Errorf("Nested template not rendered, got %q", data)
	}
}

func TestRun_NoTemplatesIsSuccess(t *testing.T) {
	cfg := setupStore(t, "UNUSED: x\n")
	cfg.TemplateDirs = []string{t.TempDir()}

	result, err := Run(cfg, secrets.MemoryCipher{}, testLogger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Rendered) != 0 {
		t.Errorf("Expected no rendered files, got %v", result.Rendered)
	}
}

func TestRun_MissingTemplateDirectory(t *testing.T) {
	cfg := setupStore(t, "X: y\n")
	cfg.TemplateDirs = []string{filepath.Join(t.TempDir(), "not-mounted")}

	_, err := Run(cfg, secrets.MemoryCipher{}, testLogger)
	if err == nil {
		t.Fatal("Expected error for missing template directory")
	}
	var cfgErr *derrors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %T: %v", err, err)
	}
}

func TestRun_MissingConfigurationErrors(t *testing.T) {
	_, err := Run(&configs.Config{}, secrets.MemoryCipher{}, testLogger)
	if err == nil {
		t.Fatal("Expected error for missing key file")
	}
	var cfgErr *derrors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %T: %v", err, err)
	}
}

func TestRun_WritesAuditEntry(t *testing.T) {
	cfg := setupStore(t, "TOKEN: abc\n")

	templateDir := t.TempDir()
	writeTemplate(t, filepath.Join(templateDir, "app.template"), "$DCSM{TOKEN}")
	cfg.TemplateDirs = []string{templateDir}
	cfg.AuditFile = filepath.Join(t.TempDir(), "audit.jsonl")

	if _, err := Run(cfg, secrets.MemoryCipher{}, testLogger); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	entries, err := audit.ReadEntries(cfg.AuditFile)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Operation != "run" || entry.Outcome != audit.OutcomeSuccess {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if entry.Files != 1 {
		t.Errorf("Expected 1 file recorded, got %d", entry.Files)
	}
	if entry.RunID == "" {
		t.Error("Expected a run id")
	}
}
