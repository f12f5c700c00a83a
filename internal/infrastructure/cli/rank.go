package cli

import (
	"fmt"

	"github.com/felixgeelhaar/ricemill/pkg/domain/insights"
	"github.com/spf13/cobra"
)

var (
	rankLimit  int
	rankFilter string
	rankJSON   bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the current ranked backlog",
	Example: `  ricemill rank --limit 10
  ricemill rank --filter 'quadrant == "Quick Wins" && composite > 20.0'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		records, err := services.Prioritization.Ranking(0)
		if err != nil {
			return MapError(err)
		}
		records, err = insights.ApplyFilter(records, rankFilter)
		if err != nil {
			return NewCLIError("invalid filter expression", "Filters are CEL over name, composite, rice, ml, effort, risk, quarter, quadrant and rank", err)
		}
		if rankLimit > 0 && rankLimit < len(records) {
			records = records[:rankLimit]
		}

		if rankJSON {
			return printJSON(cmd.OutOrStdout(), records)
		}

		if len(records) == 0 {
			fmt.Println("No features match.")
			return nil
		}
		fmt.Printf("%-4s %-36s %8s %8s %8s %-10s %s\n", "Rank", "Feature", "RICE", "ML", "Comp", "Quarter", "Quadrant")
		for _, r := range records {
			fmt.Printf("%-4d %-36s %8.1f %8.1f %8.1f %-10s %s\n",
				r.Rank, r.Feature, r.RICE, r.ML, r.Composite, r.Quarter, r.Quadrant)
		}
		return nil
	},
}

func init() {
	rankCmd.Flags().IntVarP(&rankLimit, "limit", "n", 0, "Show only the top N features")
	rankCmd.Flags().StringVar(&rankFilter, "filter", "", "CEL expression narrowing the records")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "Emit the records as JSON")
	RootCmd.AddCommand(rankCmd)
}
