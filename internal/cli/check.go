package cli

import (
	"log"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <fit-id>",
	Short: "Check whether a pilot can fly a specific fit",
	Long: `Checks a single fit's eligibility for a pilot: the clone gate
first, then the authoritative skill requirements. Fit identifiers have
the form hull/activity/tier, e.g. Vexor/anomaly_ratting/base.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pilot, err := parsePilot(cmd)
		if err != nil {
			log.Fatal(err)
		}

		data, err := postJSON(serverURL(cmd)+"/api/selection/check", map[string]interface{}{
			"fit_id": args[0],
			"pilot":  pilot,
		})
		if err != nil {
			log.Fatal(err)
		}
		printJSON(data)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addPilotFlags(checkCmd)
}
