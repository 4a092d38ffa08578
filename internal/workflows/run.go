package workflows

import (
	"github.com/igor47/dcsm/internal/configs"
	logger "github.com/igor47/dcsm/internal/logging"
	"github.com/igor47/dcsm/internal/secrets"
	"github.com/igor47/dcsm/internal/templates"
)

// RunResult contains the outcome of the render pipeline.
type RunResult struct {
	// Templates lists the discovered template paths in processing order.
	Templates []string

	// Rendered lists the destination paths that were written.
	Rendered []string
}

// Run executes the default pipeline: decrypt the store once, discover every
// template, render the whole batch in memory, then materialize all of it.
// On any failure no output file has been created or modified, except for an
// IOError raised partway through the final write phase, which aborts the
// run with the files written so far intact and atomic.
func Run(cfg *configs.Config, cipher secrets.Cipher, log logger.Logger) (result *RunResult, err error) {
	defer func() {
		files := 0
		if result != nil {
			files = len(result.Rendered)
		}
		logOutcome(cfg, "run", files, err)
	}()

	if err = cfg.RequireKeyFile(); err != nil {
		return nil, err
	}
	if err = cfg.RequireSecretsFile(); err != nil {
		return nil, err
	}

	log.Debugf("Decrypting secret store %s", cfg.SecretsFile)
	mapping, err := secrets.Load(cfg.KeyFile, cfg.SecretsFile, cipher)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %d secrets", len(mapping))

	paths, err := templates.Scan(cfg.TemplateDirs)
	if err != nil {
		return nil, err
	}
	log.Infof("Found %d template files in %d directories", len(paths), len(cfg.TemplateDirs))

	rendered, err := templates.RenderAll(paths, mapping)
	if err != nil {
		return nil, err
	}

	if err = templates.WriteAll(rendered); err != nil {
		return nil, err
	}

	result = &RunResult{Templates: paths}
	for _, f := range rendered {
		log.Debugf("Rendered %s", f.Path)
		result.Rendered = append(result.Rendered, f.Path)
	}
	return result, nil
}
