package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var capacityJSON bool

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Show per-quarter effort load against the configured velocity",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		loads, err := services.Prioritization.Capacity()
		if err != nil {
			return MapError(err)
		}

		if capacityJSON {
			return printJSON(cmd.OutOrStdout(), loads)
		}

		for _, load := range loads {
			fmt.Printf("%-10s %6.1f points  %5.1f%% utilized  [%s]\n",
				load.Quarter, load.Effort, load.Utilization, load.Status)
		}
		return nil
	},
}

func init() {
	capacityCmd.Flags().BoolVar(&capacityJSON, "json", false, "Emit the loads as JSON")
	RootCmd.AddCommand(capacityCmd)
}
