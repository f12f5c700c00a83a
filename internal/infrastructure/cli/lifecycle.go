package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lifecycleCmd = &cobra.Command{
	Use:     "lifecycle <feature> <event>",
	Short:   "Move a feature through the delivery funnel",
	Long:    `Features move through backlog, scored, planned, shipped, rejected and archived states. Valid events are score, plan, ship, reject, archive and reopen.`,
	Example: `  ricemill lifecycle "Dark mode support" plan`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		next, err := services.Roadmap.Transition(args[0], args[1])
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("%s is now %s.\n", args[0], next)
		return nil
	},
}

var lifecycleListJSON bool

var lifecycleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every tracked feature and its lifecycle state",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		states, err := services.Roadmap.List()
		if err != nil {
			return MapError(err)
		}

		if lifecycleListJSON {
			return printJSON(cmd.OutOrStdout(), states)
		}

		if len(states) == 0 {
			fmt.Println("No features tracked yet.")
			return nil
		}
		for _, s := range states {
			fmt.Printf("  %-36s %s\n", s.Feature, s.State)
		}
		return nil
	},
}

func init() {
	lifecycleListCmd.Flags().BoolVar(&lifecycleListJSON, "json", false, "Emit the states as JSON")
	lifecycleCmd.AddCommand(lifecycleListCmd)
	RootCmd.AddCommand(lifecycleCmd)
}
