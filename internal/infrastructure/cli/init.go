package cli

import (
	"fmt"

	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new ricemill workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return err
		}
		services, err := loadServices(root)
		if err != nil {
			return err
		}

		repo := services.Workspace.Repo
		if repo.IsInitialized() {
			fmt.Printf("Workspace already initialized at %s\n", root)
			return nil
		}

		if err := repo.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize workspace: %w", err)
		}
		if err := repo.SaveConfig(domain.DefaultConfig()); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
		if err := services.Audit.Log(domain.ActionWorkspaceInit, "cli", map[string]interface{}{"root": root}); err != nil {
			return err
		}

		fmt.Printf("Initialized ricemill workspace at %s\n", root)
		fmt.Println("Next: add feedback with 'ricemill add feedback' or load sample data with 'ricemill seed'.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
