package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var riskJSON bool

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show the backlog sorted by delivery risk, highest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		records, err := services.Prioritization.Risk()
		if err != nil {
			return MapError(err)
		}

		if riskJSON {
			return printJSON(cmd.OutOrStdout(), records)
		}

		fmt.Printf("%-36s %6s %8s %10s\n", "Feature", "Risk", "Effort", "Confidence")
		for _, r := range records {
			fmt.Printf("%-36s %6.1f %8.1f %9.0f%%\n", r.Feature, r.Risk, r.Effort, r.Confidence*100)
		}
		return nil
	},
}

func init() {
	riskCmd.Flags().BoolVar(&riskJSON, "json", false, "Emit the records as JSON")
	RootCmd.AddCommand(riskCmd)
}
