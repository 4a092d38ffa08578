package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	derrors "github.com/igor47/dcsm/internal/errors"
)

// Environment variables understood by DCSM. Any variable whose name starts
// with TemplateDirPrefix configures one template search directory; the
// suffix is arbitrary and only used to keep the entries distinct.
const (
	EnvConfigFile  = "DCSM_CONFIG"
	EnvKeyFile     = "DCSM_KEYFILE"
	EnvSecretsFile = "DCSM_SECRETS_FILE"
	EnvSourceFile  = "DCSM_SOURCE_FILE"
	EnvAuditFile   = "DCSM_AUDIT_FILE"

	TemplateDirPrefix = "DCSM_TEMPLATE_"
)

// Config holds the resolved inputs for a single invocation. It is built
// once at startup and passed by parameter; no component reads the
// environment after resolution.
type Config struct {
	// KeyFile is the private key for the encryption collaborator.
	KeyFile string

	// SecretsFile is the encrypted secret store.
	SecretsFile string

	// SourceFile is the plaintext secrets source, used only by the
	// encrypt and decrypt commands.
	SourceFile string

	// AuditFile, when set, receives one JSONL entry per command.
	AuditFile string

	// TemplateDirs are the directories searched for *.template files,
	// in deterministic order.
	TemplateDirs []string
}

// fileSettings is the shape of the optional TOML settings file named by
// DCSM_CONFIG. Environment variables override anything set here.
type fileSettings struct {
	KeyFile      string   `toml:"keyfile"`
	SecretsFile  string   `toml:"secrets_file"`
	SourceFile   string   `toml:"source_file"`
	AuditFile    string   `toml:"audit_file"`
	TemplateDirs []string `toml:"template_dirs"`
}

// Resolve builds the run configuration from the process environment.
func Resolve() (*Config, error) {
	return ResolveFromEnviron(os.Environ())
}

// ResolveFromEnviron builds the run configuration from an explicit
// environment in the os.Environ "KEY=value" form. Split out so tests can
// resolve without mutating the process environment.
func ResolveFromEnviron(environ []string) (*Config, error) {
	env := make(map[string]string, len(environ))
	var templateVars []string
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		env[key] = value
		if strings.HasPrefix(key, TemplateDirPrefix) && value != "" {
			templateVars = append(templateVars, key)
		}
	}

	cfg := &Config{}

	if path := env[EnvConfigFile]; path != "" {
		var settings fileSettings
		if err := LoadTOML(path, &settings); err != nil {
			return nil, &derrors.ConfigurationError{
				Setting: EnvConfigFile,
				Reason:  fmt.Sprintf("settings file %s could not be loaded: %v", path, err),
			}
		}
		cfg.KeyFile = settings.KeyFile
		cfg.SecretsFile = settings.SecretsFile
		cfg.SourceFile = settings.SourceFile
		cfg.AuditFile = settings.AuditFile
		cfg.TemplateDirs = settings.TemplateDirs
	}

	if v := env[EnvKeyFile]; v != "" {
		cfg.KeyFile = v
	}
	if v := env[EnvSecretsFile]; v != "" {
		cfg.SecretsFile = v
	}
	if v := env[EnvSourceFile]; v != "" {
		cfg.SourceFile = v
	}
	if v := env[EnvAuditFile]; v != "" {
		cfg.AuditFile = v
	}

	// Sort by variable name so the directory order is reproducible no
	// matter how the environment is delivered.
	sort.Strings(templateVars)
	for _, key := range templateVars {
		cfg.TemplateDirs = append(cfg.TemplateDirs, env[key])
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize resolves every configured path to an absolute path and drops
// duplicate template directories.
func (c *Config) normalize() error {
	for _, field := range []*string{&c.KeyFile, &c.SecretsFile, &c.SourceFile, &c.AuditFile} {
		if *field == "" {
			continue
		}
		abs, err := filepath.Abs(*field)
		if err != nil {
			return &derrors.ConfigurationError{Setting: *field, Reason: "is not a resolvable path"}
		}
		*field = abs
	}

	seen := make(map[string]bool, len(c.TemplateDirs))
	dirs := c.TemplateDirs[:0]
	for _, dir := range c.TemplateDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return &derrors.ConfigurationError{Setting: dir, Reason: "is not a resolvable path"}
		}
		if !seen[abs] {
			seen[abs] = true
			dirs = append(dirs, abs)
		}
	}
	c.TemplateDirs = dirs
	return nil
}

// RequireKeyFileSet fails unless the key file path is configured.
func (c *Config) RequireKeyFileSet() error {
	if c.KeyFile == "" {
		return &derrors.ConfigurationError{Setting: EnvKeyFile, Reason: "is required"}
	}
	return nil
}

// RequireKeyFile fails unless the key file is configured and present.
func (c *Config) RequireKeyFile() error {
	if err := c.RequireKeyFileSet(); err != nil {
		return err
	}
	return requireFile(EnvKeyFile, c.KeyFile)
}

// RequireSecretsFileSet fails unless the encrypted store path is configured.
func (c *Config) RequireSecretsFileSet() error {
	if c.SecretsFile == "" {
		return &derrors.ConfigurationError{Setting: EnvSecretsFile, Reason: "is required"}
	}
	return nil
}

// RequireSecretsFile fails unless the encrypted store is configured and present.
func (c *Config) RequireSecretsFile() error {
	if err := c.RequireSecretsFileSet(); err != nil {
		return err
	}
	return requireFile(EnvSecretsFile, c.SecretsFile)
}

// RequireSourceFileSet fails unless the plaintext source path is configured.
func (c *Config) RequireSourceFileSet() error {
	if c.SourceFile == "" {
		return &derrors.ConfigurationError{Setting: EnvSourceFile, Reason: "is required"}
	}
	return nil
}

// RequireSourceFile fails unless the plaintext source is configured and present.
func (c *Config) RequireSourceFile() error {
	if err := c.RequireSourceFileSet(); err != nil {
		return err
	}
	return requireFile(EnvSourceFile, c.SourceFile)
}

func requireFile(setting, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &derrors.ConfigurationError{
			Setting: setting,
			Reason:  fmt.Sprintf("%s does not exist", path),
		}
	}
	if err != nil {
		return &derrors.ConfigurationError{
			Setting: setting,
			Reason:  fmt.Sprintf("%s is not readable: %v", path, err),
		}
	}
	if info.IsDir() {
		return &derrors.ConfigurationError{
			Setting: setting,
			Reason:  fmt.Sprintf("%s is a directory, expected a file", path),
		}
	}
	return nil
}
