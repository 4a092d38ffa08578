package run_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igor47/dcsm/test/integration/shared"
)

func TestRunCommand_RendersTemplates(t *testing.T) {
	shared.UseMemoryCipher(t)
	shared.SetupStore(t, "DB_PASSWORD: hunter2\nAPI_KEY: abc123\n")

	templateDir := t.TempDir()
	tmpl := "password = $DCSM{DB_PASSWORD}\nkey = $DCSM{API_KEY}\n"
	if err := os.WriteFile(filepath.Join(templateDir, "app.conf.template"), []byte(tmpl), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to write template: %v", err)
	}
	t.Setenv("DCSM_TEMPLATE_APP", templateDir)

	output, err := shared.ExecuteCommand(t, "run")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Successfully processed 1 template files") {
		t.Errorf("Unexpected output: %q", output)
	}

	data, err := os.ReadFile(filepath.Join(templateDir, "app.conf"))
	if err != nil {
		t.Fatalf("Rendered file missing: %v", err)
	}
	expected := "password = hunter2\nkey = abc123\n"
	if string(data) != expected {
		t.Errorf("Expected %q, got %q", expected, data)
	}
}

func TestRunCommand_IsTheDefault(t *testing.T) {
	shared.UseMemoryCipher(t)
	shared.SetupStore(t, "TOKEN: tok\n")

	templateDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(templateDir, "env.template"), []byte("$DCSM{TOKEN}"), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to write template: %v", err)
	}
	t.Setenv("DCSM_TEMPLATE_ENV", templateDir)

	// Bare `dcsm` with no subcommand behaves as `dcsm run`.
	output, err := shared.ExecuteCommand(t)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	data, err := os.ReadFile(filepath.Join(templateDir, "env"))
	if err != nil {
		t.Fatalf("Rendered file missing: %v", err)
	}
	if string(data) != "tok" {
		t.Errorf("Expected %q, got %q", "tok", data)
	}
}

func TestRunCommand_MissingSecretFailsWithoutOutput(t *testing.T) {
	shared.UseMemoryCipher(t)
	shared.SetupStore(t, "PRESENT: yes\n")

	templateDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(templateDir, "a.template"), []byte("$DCSM{ABSENT}"), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to write template: %v", err)
	}
	t.Setenv("DCSM_TEMPLATE_A", templateDir)

	_, err := shared.ExecuteCommand(t, "run")
	if err == nil {
		t.Fatal("Expected run to fail on missing secret")
	}
	if !strings.Contains(err.Error(), "ABSENT") {
		t.Errorf("Error should name the missing secret, got: %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(templateDir, "a")); !os.IsNotExist(statErr) {
		t.Error("Output file should not exist after a failed run")
	}
}

func TestRunCommand_MissingKeyFile(t *testing.T) {
	shared.UseMemoryCipher(t)
	t.Setenv("DCSM_KEYFILE", filepath.Join(t.TempDir(), "absent.txt"))
	t.Setenv("DCSM_SECRETS_FILE", filepath.Join(t.TempDir(), "absent.enc"))

	_, err := shared.ExecuteCommand(t, "run")
	if err == nil {
		t.Fatal("Expected run to fail without a key file")
	}
	if !strings.Contains(err.Error(), "DCSM_KEYFILE") {
		t.Errorf("Error should name the setting, got: %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := shared.ExecuteCommand(t, "bogus")
	if err == nil {
		t.Fatal("Expected error for unknown command")
	}
}
