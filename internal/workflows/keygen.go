package workflows

import (
	"os"

	"github.com/igor47/dcsm/internal/configs"
	derrors "github.com/igor47/dcsm/internal/errors"
	logger "github.com/igor47/dcsm/internal/logging"
	"github.com/igor47/dcsm/internal/secrets"
)

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	// KeyFile is the path of the generated key.
	KeyFile string
}

// Keygen generates a fresh private key at the configured key path. An
// existing key file is never overwritten: losing it would make every
// secret store encrypted to it unreadable.
func Keygen(cfg *configs.Config, cipher secrets.Cipher, log logger.Logger) (result *KeygenResult, err error) {
	defer func() { logOutcome(cfg, "keygen", 0, err) }()

	if err = cfg.RequireKeyFileSet(); err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(cfg.KeyFile); statErr == nil {
		return nil, &derrors.KeyGenerationError{
			Path:   cfg.KeyFile,
			Reason: "key file already exists, refusing to overwrite",
		}
	}

	log.Debugf("Generating key file %s", cfg.KeyFile)
	if err = cipher.GenerateKey(cfg.KeyFile); err != nil {
		return nil, err
	}

	return &KeygenResult{KeyFile: cfg.KeyFile}, nil
}
