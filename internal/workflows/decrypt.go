package workflows

import (
	"fmt"

	"github.com/igor47/dcsm/internal/configs"
	derrors "github.com/igor47/dcsm/internal/errors"
	logger "github.com/igor47/dcsm/internal/logging"
	"github.com/igor47/dcsm/internal/secrets"
)

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Source is the encrypted store that was read.
	Source string

	// Dest is the plaintext file that was written.
	Dest string
}

// Decrypt writes the secret store back out as plaintext, for editing. The
// inverse guard of Encrypt applies: an existing plaintext source newer than
// the store is never overwritten, because it holds edits not yet encrypted.
func Decrypt(cfg *configs.Config, cipher secrets.Cipher, log logger.Logger) (result *DecryptResult, err error) {
	defer func() { logOutcome(cfg, "decrypt", 0, err) }()

	if err = cfg.RequireSourceFileSet(); err != nil {
		return nil, err
	}
	if err = cfg.RequireKeyFile(); err != nil {
		return nil, err
	}
	if err = cfg.RequireSecretsFile(); err != nil {
		return nil, err
	}

	secretsNewer, err := newerThan(cfg.SecretsFile, cfg.SourceFile)
	if err != nil {
		return nil, err
	}
	if !secretsNewer {
		return nil, &derrors.ConfigurationError{
			Setting: configs.EnvSourceFile,
			Reason:  fmt.Sprintf("%s is newer than encrypted store %s; refusing to overwrite", cfg.SourceFile, cfg.SecretsFile),
		}
	}

	log.Debugf("Decrypting %s into %s", cfg.SecretsFile, cfg.SourceFile)
	if err = cipher.DecryptTo(cfg.KeyFile, cfg.SecretsFile, cfg.SourceFile); err != nil {
		return nil, err
	}

	return &DecryptResult{Source: cfg.SecretsFile, Dest: cfg.SourceFile}, nil
}
