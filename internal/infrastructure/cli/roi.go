package cli

import (
	"fmt"

	"github.com/felixgeelhaar/ricemill/pkg/domain/roi"
	"github.com/spf13/cobra"
)

var roiJSON bool

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Show cost, revenue and payback projections for the top-ranked features",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		projections, err := services.Prioritization.ROI()
		if err != nil {
			return MapError(err)
		}

		if roiJSON {
			return printJSON(cmd.OutOrStdout(), projections)
		}

		fmt.Printf("%-36s %12s %14s %8s %9s\n", "Feature", "Cost", "Annual Rev", "ROI %", "Payback")
		for _, p := range projections {
			fmt.Printf("%-36s %12s %14s %8s %6s mo\n",
				p.Feature,
				"$"+p.DevelopmentCost.StringFixed(0),
				"$"+p.AnnualRevenue.StringFixed(0),
				p.ROIPercent.StringFixed(1),
				p.PaybackMonths.StringFixed(1))
		}

		cost, revenue := roi.Totals(projections)
		fmt.Printf("\nTotal investment $%s against projected annual revenue $%s.\n",
			cost.StringFixed(0), revenue.StringFixed(0))
		return nil
	},
}

func init() {
	roiCmd.Flags().BoolVar(&roiJSON, "json", false, "Emit the projections as JSON")
	RootCmd.AddCommand(roiCmd)
}
