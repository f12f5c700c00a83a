package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record feedback or usage data by hand",
}

var (
	addFeedbackType     string
	addFeedbackPriority string
	addFeedbackSegment  string
	addFeedbackRevenue  float64
	addFeedbackEffort   int
	addFeedbackValue    int
)

var addFeedbackCmd = &cobra.Command{
	Use:     "feedback <customer-id> <feature>",
	Short:   "Record a single piece of customer feedback",
	Example: `  ricemill add feedback acme-corp "Dark mode support" --priority high --effort 5 --value 7`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		record := feedback.NewRecord(args[0], args[1])
		record.Type = feedback.FeedbackType(addFeedbackType)
		record.Segment = addFeedbackSegment
		record.RevenueImpact = addFeedbackRevenue
		record.Source = "cli"
		if addFeedbackEffort > 0 {
			record.Effort = addFeedbackEffort
		}
		if addFeedbackValue > 0 {
			record.BusinessValue = addFeedbackValue
		}
		priority, err := feedback.ParsePriorityLevel(addFeedbackPriority)
		if err != nil {
			return err
		}
		record.Priority = priority

		if err := services.Intake.AddFeedback(record); err != nil {
			return MapError(err)
		}

		fmt.Printf("Recorded feedback for %q from %s.\n", record.Feature, record.CustomerID)
		return nil
	},
}

var (
	addUsageUserID   string
	addUsageCount    int
	addUsageDuration float64
	addUsageSegment  string
)

var addUsageCmd = &cobra.Command{
	Use:     "usage <feature>",
	Short:   "Record a usage telemetry event for a feature",
	Example: `  ricemill add usage "Dark mode support" --user u-120 --count 14 --duration 6.5`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		usage := &feedback.Usage{
			Feature:         args[0],
			UserID:          addUsageUserID,
			UsageCount:      addUsageCount,
			SessionDuration: addUsageDuration,
			Segment:         addUsageSegment,
			RecordedAt:      time.Now().UTC(),
		}

		if err := services.Intake.AddUsage(usage); err != nil {
			return MapError(err)
		}

		fmt.Printf("Recorded usage of %q by %s.\n", usage.Feature, usage.UserID)
		return nil
	},
}

func init() {
	addFeedbackCmd.Flags().StringVar(&addFeedbackType, "type", string(feedback.TypeFeatureRequest), "Feedback type (feature_request, enhancement, bug_report)")
	addFeedbackCmd.Flags().StringVar(&addFeedbackPriority, "priority", string(feedback.PriorityMedium), "Customer priority (low, medium, high, critical)")
	addFeedbackCmd.Flags().StringVar(&addFeedbackSegment, "segment", "", "Customer segment, e.g. enterprise")
	addFeedbackCmd.Flags().Float64Var(&addFeedbackRevenue, "revenue", 0, "Estimated revenue impact in dollars")
	addFeedbackCmd.Flags().IntVar(&addFeedbackEffort, "effort", 0, "Effort estimate in points")
	addFeedbackCmd.Flags().IntVar(&addFeedbackValue, "value", 0, "Business value from 1 to 10")

	addUsageCmd.Flags().StringVar(&addUsageUserID, "user", "", "User the event belongs to")
	addUsageCmd.Flags().IntVar(&addUsageCount, "count", 1, "Number of uses in the reporting window")
	addUsageCmd.Flags().Float64Var(&addUsageDuration, "duration", 0, "Average session duration in minutes")
	addUsageCmd.Flags().StringVar(&addUsageSegment, "segment", "", "User segment, e.g. enterprise")
	_ = addUsageCmd.MarkFlagRequired("user")

	addCmd.AddCommand(addFeedbackCmd)
	addCmd.AddCommand(addUsageCmd)
	RootCmd.AddCommand(addCmd)
}
