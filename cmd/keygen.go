package cmd

import (
	"github.com/igor47/dcsm/internal/configs"
	"github.com/igor47/dcsm/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generates a new private key at DCSM_KEYFILE",
	Long: `Generates fresh private key material at the path named by DCSM_KEYFILE.
Fails if the key file already exists; an existing key is never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")
		spinner, cleanup := startSpinner("Generating key file...", verbose)
		defer cleanup()

		cfg, err := configs.Resolve()
		if err != nil {
			return err
		}

		result, err := workflows.Keygen(cfg, cipher, Logger)
		if err != nil {
			return err
		}

		finalMessage := color.GreenString("✓") + " Generated key file " +
			color.YellowString(result.KeyFile) + "\n" +
			color.CyanString("→") + " Keep this file out of version control"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
