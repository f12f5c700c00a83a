package cli

import (
	"fmt"

	"github.com/felixgeelhaar/ricemill/pkg/domain/insights"
	"github.com/spf13/cobra"
)

var (
	simulateName            string
	simulateBoost           []string
	simulateEffortReduction float64
	simulateExclude         []string
	simulateJSON            bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a what-if scenario against the current ranking",
	Long: `Simulate re-ranks a copy of the current snapshot under a hypothetical
scenario. The snapshot on disk is never modified. Boosted features get a
1.5x composite multiplier, effort reduction shrinks every estimate by the
given fraction, and excluded features are removed entirely.`,
	Example: `  ricemill simulate --boost "dark mode" --name "push dark mode"
  ricemill simulate --effort-reduction 0.2 --exclude "sso"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		outcome, err := services.Query.Simulate(insights.Scenario{
			Name:            simulateName,
			Boost:           simulateBoost,
			EffortReduction: simulateEffortReduction,
			Exclude:         simulateExclude,
		})
		if err != nil {
			return MapError(err)
		}

		if simulateJSON {
			return printJSON(cmd.OutOrStdout(), outcome)
		}

		if outcome.Scenario != "" {
			fmt.Printf("Scenario: %s\n\n", outcome.Scenario)
		}
		for i, name := range outcome.Top {
			fmt.Printf("  %d. %s\n", i+1, name)
		}
		fmt.Printf("\nTotal effort %.0f points, average composite %.1f.\n",
			outcome.TotalEffort, outcome.AvgComposite)
		if outcome.BaselineChanges > 0 {
			fmt.Printf("%d features left the baseline top 10.\n", outcome.BaselineChanges)
		} else {
			fmt.Println("The baseline top 10 is unchanged.")
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateName, "name", "", "Scenario name for the report")
	simulateCmd.Flags().StringSliceVar(&simulateBoost, "boost", nil, "Feature name fragments to boost 1.5x")
	simulateCmd.Flags().Float64Var(&simulateEffortReduction, "effort-reduction", 0, "Fraction between 0 and 1 by which every effort estimate shrinks")
	simulateCmd.Flags().StringSliceVar(&simulateExclude, "exclude", nil, "Feature name fragments to remove from the ranking")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "Emit the outcome as JSON")
	RootCmd.AddCommand(simulateCmd)
}
