package cli

import (
	"log"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status and catalog summary",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := getJSON(serverURL(cmd) + "/api/system/status")
		if err != nil {
			log.Fatal(err)
		}
		printJSON(data)

		summary, err := getJSON(serverURL(cmd) + "/api/catalog/summary")
		if err != nil {
			// No catalog yet is a state worth reporting, not a crash.
			log.Printf("catalog summary unavailable: %v", err)
			return
		}
		printJSON(summary)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
