// Package cli implements the qm command line front end. Every command
// talks to a running Quartermaster server over its HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qm",
	Short: "Ship fit selection from the command line",
	Long: `qm is the command line front end for the Quartermaster fit
selection service. It picks the best curated fit for a hull, activity
and pilot, checks whether a pilot can fly a specific fit, and manages
the running server's catalog.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("server", "s", "http://localhost:8010", "Quartermaster server URL")
}
