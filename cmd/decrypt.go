package cmd

import (
	"github.com/igor47/dcsm/internal/configs"
	"github.com/igor47/dcsm/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypts the secret store back out to the plaintext source",
	Long: `Decrypts the store at DCSM_SECRETS_FILE into the file at DCSM_SOURCE_FILE
for editing. Refuses to overwrite a source file that is newer than the
store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		spinner, cleanup := startSpinner("Decrypting secret store...", verbose)
		defer cleanup()

		cfg, err := configs.Resolve()
		if err != nil {
			return err
		}

		result, err := workflows.Decrypt(cfg, cipher, Logger)
		if err != nil {
			return err
		}

		finalMessage := color.GreenString("✓") + " Decrypted " +
			color.YellowString(result.Source) + " => " + color.YellowString(result.Dest) + "\n" +
			color.YellowString("⚠") + " Don't forget to re-encrypt and remove the source file!"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
