package cmd

import (
	"fmt"

	"github.com/igor47/dcsm/internal/configs"
	"github.com/igor47/dcsm/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Renders every template file against the decrypted secret store",
	Long: `Decrypts the secret store once, discovers every *.template file under the
configured DCSM_TEMPLATE_* directories, substitutes placeholders, and writes
each rendered file next to its template with the suffix stripped.

The batch is all-or-nothing: if any template references a secret that is not
in the store, no output file is created or modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting run command")
		spinner, cleanup := startSpinner("Rendering template files...", verbose)
		defer cleanup()

		cfg, err := configs.Resolve()
		if err != nil {
			return err
		}
		Logger.Debugf("Key file: %s, secrets file: %s", cfg.KeyFile, cfg.SecretsFile)

		result, err := workflows.Run(cfg, cipher, Logger)
		if err != nil {
			return err
		}

		finalMessage := color.GreenString("✓") +
			fmt.Sprintf(" Successfully processed %d template files", len(result.Rendered))
		spinner.FinalMSG = finalMessage
		return nil
	},
}
