package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var timelineJSON bool

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the quarter-by-quarter roadmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		timeline, err := services.Prioritization.Timeline()
		if err != nil {
			return MapError(err)
		}

		if timelineJSON {
			return printJSON(cmd.OutOrStdout(), timeline)
		}

		quarters := make([]string, 0, len(timeline))
		for q := range timeline {
			quarters = append(quarters, q)
		}
		sort.Strings(quarters)

		for _, q := range quarters {
			records := timeline[q]
			var effort float64
			for _, r := range records {
				effort += r.Effort
			}
			fmt.Printf("%s  (%d features, %.0f points)\n", q, len(records), effort)
			for _, r := range records {
				fmt.Printf("  %d. %-36s composite %6.1f\n", r.Rank, r.Feature, r.Composite)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "Emit the timeline as JSON")
	RootCmd.AddCommand(timelineCmd)
}
