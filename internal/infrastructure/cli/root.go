package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var projectPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "ricemill",
	Version: Version,
	Short:   "An evidence-driven prioritization engine for product roadmaps",
	Long: `Ricemill turns raw customer feedback and usage telemetry into a ranked
product roadmap. It helps product teams answer:
1. What should we build next?
2. When can we ship it?
3. Is it worth the effort?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "Workspace root (defaults to the current directory)")
}
