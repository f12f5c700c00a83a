package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askFilter string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a natural language question about the roadmap",
	Long: `Ask routes a question to the matching planning view: priorities,
timeline, ROI, capacity, risk, or a feature comparison. Every answered
question is appended to the query log.`,
	Example: `  ricemill ask "What should we build first?"
  ricemill ask "When will dark mode ship?" --filter 'composite > 10.0'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		result, err := services.Query.Ask(question, askFilter)
		if err != nil {
			return MapError(err)
		}

		fmt.Println(result.Answer)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously asked questions and their answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		entries, err := services.Query.History()
		if err != nil {
			return MapError(err)
		}
		if len(entries) == 0 {
			fmt.Println("No questions asked yet.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("[%s] (%s) %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Kind, e.Query)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askFilter, "filter", "", "CEL expression narrowing the records the answer is built from")
	RootCmd.AddCommand(askCmd)
	RootCmd.AddCommand(historyCmd)
}
