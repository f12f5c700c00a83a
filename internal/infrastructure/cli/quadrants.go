package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quadrantsJSON bool

// quadrantOrder fixes the display order; map iteration is random.
var quadrantOrder = []string{"Quick Wins", "Major Projects", "Fill-ins", "Questionable"}

var quadrantsCmd = &cobra.Command{
	Use:   "quadrants",
	Short: "Group the backlog into effort/impact quadrants",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		quadrants, err := services.Prioritization.Quadrants()
		if err != nil {
			return MapError(err)
		}

		if quadrantsJSON {
			return printJSON(cmd.OutOrStdout(), quadrants)
		}

		for _, name := range quadrantOrder {
			records := quadrants[name]
			if len(records) == 0 {
				continue
			}
			fmt.Printf("%s (%d)\n", name, len(records))
			for _, r := range records {
				fmt.Printf("  %-36s effort %5.1f  impact %4.1f  composite %6.1f\n",
					r.Feature, r.Effort, r.Impact, r.Composite)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	quadrantsCmd.Flags().BoolVar(&quadrantsJSON, "json", false, "Emit the quadrants as JSON")
	RootCmd.AddCommand(quadrantsCmd)
}
