package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Recompute the ranking from the intake logs",
	Long: `Score summarizes the feedback and usage logs into per-feature metrics,
derives RICE scores, trains the gradient-boosted re-ranker when enough
features exist, blends both into a composite ranking, and assigns
quarters. The resulting snapshot feeds every planning view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		result, err := services.Prioritization.Score()
		if err != nil {
			return MapError(err)
		}
		if notifier := services.Workspace.Notifier; notifier != nil {
			notifier.Wait()
		}

		if scoreJSON {
			return printJSON(cmd.OutOrStdout(), result)
		}

		fmt.Printf("Scored %d features.\n", len(result.Records))
		if result.ModelUsed {
			fmt.Printf("Re-ranker trained (train R2 %.3f, test R2 %.3f).\n",
				result.TrainStats.TrainR2, result.TrainStats.TestR2)
		} else {
			fmt.Println("Too few features for the re-ranker; using pure RICE ordering.")
		}
		fmt.Println("\nTop of the ranking:")
		for i, r := range result.Records {
			if i >= 5 {
				break
			}
			fmt.Printf("  %d. %-34s composite %6.1f  %s\n", r.Rank, r.Feature, r.Composite, r.Quarter)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Emit the full score result as JSON")
	RootCmd.AddCommand(scoreCmd)
}
