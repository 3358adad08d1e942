package cli

import (
	"log"

	"github.com/spf13/cobra"
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select the best fit(s) for a hull, activity and pilot",
	Long: `Runs the full selection pipeline on the server: eligibility
filtering, optional mission matching, and ranking. Prints either a
single recommended fit or an efficient/premium pair.`,
	Run: func(cmd *cobra.Command, args []string) {
		hull, _ := cmd.Flags().GetString("hull")
		activity, _ := cmd.Flags().GetString("activity")
		withMission, _ := cmd.Flags().GetBool("mission")

		if hull == "" || activity == "" {
			log.Fatal("Please provide a hull and an activity (--hull, --activity)")
		}

		pilot, err := parsePilot(cmd)
		if err != nil {
			log.Fatal(err)
		}

		data, err := postJSON(serverURL(cmd)+"/api/selection/select", map[string]interface{}{
			"hull":         hull,
			"activity":     activity,
			"pilot":        pilot,
			"with_mission": withMission,
		})
		if err != nil {
			log.Fatal(err)
		}
		printJSON(data)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().StringP("hull", "H", "", "Ship hull name")
	selectCmd.Flags().StringP("activity", "a", "", "Activity identifier")
	selectCmd.Flags().BoolP("mission", "m", false, "Apply the activity's mission context")
	addPilotFlags(selectCmd)
}
