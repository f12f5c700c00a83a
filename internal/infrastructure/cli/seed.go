package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the workspace with a deterministic sample dataset",
	Long: `Seed writes a realistic batch of feedback and usage records into the
workspace so scoring, planning views and the query interface can be
explored without real intake data. The dataset is deterministic, so two
seeded workspaces rank identically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		feedbackCount, usageCount, err := services.Seed.Seed()
		if err != nil {
			return fmt.Errorf("failed to seed workspace: %w", err)
		}

		fmt.Printf("Seeded %d feedback records and %d usage events.\n", feedbackCount, usageCount)
		fmt.Println("Run 'ricemill score' to compute the ranking.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
