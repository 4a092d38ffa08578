package cmd

import (
	logger "github.com/igor47/dcsm/internal/logging"
	"github.com/igor47/dcsm/internal/secrets"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// cipher is the encryption collaborator used by every command.
	// Tests swap in a secrets.MemoryCipher via SetCipher.
	cipher secrets.Cipher = secrets.NewAgeCipher()

	RootCmd = &cobra.Command{
		Use:   "dcsm",
		Short: "DCSM - Docker Compose Secret Manager",
		Long: `DCSM keeps an encrypted secret store inside your configuration repository
and, at service startup, decrypts it and renders its values into plaintext
configuration files generated from *.template files.

A run either produces every rendered file correctly or fails before any
dependent service starts.

Available Commands:
  run        Render all templates against the decrypted store (the default)
  encrypt    Encrypt the plaintext secrets source into the store
  decrypt    Decrypt the store back out to the plaintext source
  keygen     Generate a new private key

Configuration comes from DCSM_* environment variables; run
'dcsm help <command>' for details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing dcsm with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(keygenCmd)

	// Bare `dcsm` is the startup entrypoint; it behaves as `dcsm run`.
	RootCmd.RunE = runCmd.RunE
}

// Helper functions for testing

// SetCipher replaces the encryption collaborator. Returns a restore func.
func SetCipher(c secrets.Cipher) func() {
	previous := cipher
	cipher = c
	return func() { cipher = previous }
}

// ResetGlobalState resets flag variables to their defaults for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
}
