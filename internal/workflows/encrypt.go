package workflows

import (
	"fmt"
	"os"

	"github.com/igor47/dcsm/internal/configs"
	derrors "github.com/igor47/dcsm/internal/errors"
	logger "github.com/igor47/dcsm/internal/logging"
	"github.com/igor47/dcsm/internal/secrets"
)

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Source is the plaintext file that was encrypted.
	Source string

	// Dest is the encrypted store that was written.
	Dest string
}

// Encrypt encrypts the plaintext source file into the secret store. It
// refuses to overwrite a store that is newer than its source: that means
// the store was edited through another path and encrypting would silently
// discard those secrets.
func Encrypt(cfg *configs.Config, cipher secrets.Cipher, log logger.Logger) (result *EncryptResult, err error) {
	defer func() { logOutcome(cfg, "encrypt", 0, err) }()

	if err = cfg.RequireSecretsFileSet(); err != nil {
		return nil, err
	}
	if err = cfg.RequireKeyFile(); err != nil {
		return nil, err
	}
	if err = cfg.RequireSourceFile(); err != nil {
		return nil, err
	}

	sourceNewer, err := newerThan(cfg.SourceFile, cfg.SecretsFile)
	if err != nil {
		return nil, err
	}
	if !sourceNewer {
		return nil, &derrors.ConfigurationError{
			Setting: configs.EnvSecretsFile,
			Reason:  fmt.Sprintf("%s is newer than source %s; refusing to overwrite", cfg.SecretsFile, cfg.SourceFile),
		}
	}

	log.Debugf("Encrypting %s into %s", cfg.SourceFile, cfg.SecretsFile)
	if err = cipher.Encrypt(cfg.KeyFile, cfg.SourceFile, cfg.SecretsFile); err != nil {
		return nil, err
	}

	return &EncryptResult{Source: cfg.SourceFile, Dest: cfg.SecretsFile}, nil
}

// newerThan reports whether path was modified after other. A missing other
// counts as older than everything.
func newerThan(path, other string) (bool, error) {
	otherInfo, err := os.Stat(other)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, &derrors.IOError{Op: "stat", Path: other, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, &derrors.IOError{Op: "stat", Path: path, Err: err}
	}

	return info.ModTime().After(otherInfo.ModTime()), nil
}
