package cmd

import (
	"github.com/igor47/dcsm/internal/configs"
	"github.com/igor47/dcsm/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypts the plaintext secrets source into the secret store",
	Long: `Encrypts the file at DCSM_SOURCE_FILE into the store at DCSM_SECRETS_FILE
using the key at DCSM_KEYFILE. Refuses to overwrite a store that is newer
than the source.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		spinner, cleanup := startSpinner("Encrypting secrets source...", verbose)
		defer cleanup()

		cfg, err := configs.Resolve()
		if err != nil {
			return err
		}

		result, err := workflows.Encrypt(cfg, cipher, Logger)
		if err != nil {
			return err
		}

		finalMessage := color.GreenString("✓") + " Encrypted " +
			color.YellowString(result.Source) + " => " + color.YellowString(result.Dest) + "\n" +
			color.CyanString("→") + " You can now commit the encrypted store and delete the source file"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
