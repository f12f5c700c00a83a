package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/felixgeelhaar/ricemill/internal/infrastructure/watch"
	"github.com/felixgeelhaar/ricemill/pkg/storage"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and re-score when intake data changes",
	Long: `Watch observes the workspace intake files and reruns the scoring
pipeline after a quiet period whenever feedback, usage or configuration
changes. Press Ctrl-C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return err
		}
		services, err := loadServices(root)
		if err != nil {
			return err
		}
		if !services.Workspace.Repo.IsInitialized() {
			return NewCLIError("workspace not initialized", "Run 'ricemill init' first", nil)
		}

		dir := filepath.Join(root, storage.RicemillDir)
		watcher, err := watch.NewIntakeWatcher(dir, watchDebounce, func(changed []string) {
			fmt.Printf("\nIntake change detected (%s) at %s\n",
				strings.Join(changed, ", "), time.Now().Format("15:04:05"))

			result, err := services.Prioritization.Score()
			if err != nil {
				fmt.Printf("Re-score failed: %v\n", err)
				return
			}
			fmt.Printf("Re-scored %d features.\n", len(result.Records))
			for i, r := range result.Records {
				if i >= 3 {
					break
				}
				fmt.Printf("  %d. %-34s composite %6.1f\n", r.Rank, r.Feature, r.Composite)
			}
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s for intake changes...\n", dir)
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		fmt.Println("\nStopped watching.")
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before a re-score runs")
	RootCmd.AddCommand(watchCmd)
}
