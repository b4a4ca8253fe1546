package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ugevents",
	Short: "University department event bulletin board backend",
	Long: `ugevents is the backend for the department event bulletin board.

Run "ugevents server" to start the HTTP API and "ugevents migrate up"
to apply database migrations.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
