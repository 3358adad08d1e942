package cli

import (
	"log"

	"github.com/spf13/cobra"
)

// reloadCmd represents the reload command
var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the server's fit catalog",
	Long: `Triggers a catalog reload on the server. The new document set
is validated and swapped in atomically; on failure the server keeps
serving the previous catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := postJSON(serverURL(cmd)+"/api/catalog/reload", nil)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(data)
	},
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}
