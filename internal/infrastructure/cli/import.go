package cli

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/ricemill/internal/infrastructure/intake"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	hostplugin "github.com/felixgeelhaar/ricemill/pkg/plugin"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import feedback from files, GitHub issues, or importer plugins",
}

var importJSONCmd = &cobra.Command{
	Use:     "json <file>",
	Short:   "Import a JSON array of feedback records",
	Example: `  ricemill import json feedback-export.json`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		count, err := services.Intake.ImportJSONFile(args[0])
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Imported %d feedback records from %s.\n", count, args[0])
		return nil
	},
}

var importGitHubToken string

var importGitHubCmd = &cobra.Command{
	Use:     "github <owner/repo> [owner/repo...]",
	Short:   "Import open GitHub issues as feedback records",
	Long:    `Open issues become feedback records. Labels map onto type, priority and segment; reaction counts raise the business value. Pull requests are skipped.`,
	Example: `  ricemill import github acme/product acme/mobile --token $GITHUB_TOKEN`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		token := importGitHubToken
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}

		fetcher := intake.NewGitHubFetcher(cmd.Context(), token)
		records, err := fetcher.Fetch(cmd.Context(), args)
		if err != nil {
			return MapError(fmt.Errorf("failed to fetch issues: %w", err))
		}
		if len(records) == 0 {
			fmt.Println("No open issues found.")
			return nil
		}

		count, err := services.Intake.ImportRecords("github", records)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Imported %d issues from %d repositories.\n", count, len(args))
		return nil
	},
}

var importPluginCmd = &cobra.Command{
	Use:     "plugin <name-or-path>",
	Short:   "Import feedback through an external importer plugin",
	Long:    `Runs a configured importer by name, or a plugin binary by path, and imports the feedback records it fetches. Importers are configured in .ricemill/importers.yaml.`,
	Example: `  ricemill import plugin jira`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		binary := args[0]
		config := map[string]string{}
		if cfgs, err := services.Workspace.Repo.LoadImporterConfigs(); err == nil {
			if cfg := cfgs.Get(args[0]); cfg != nil {
				binary = cfg.Binary
				config = cfg.Config
			}
		}

		loader := hostplugin.NewLoader()
		defer loader.Cleanup()

		loaded, err := loader.Load(binary)
		if err != nil {
			return MapError(err)
		}
		importer := hostplugin.NewResilientImporter(loaded)
		if err := importer.Init(config); err != nil {
			return MapError(fmt.Errorf("importer rejected its configuration: %w", err))
		}

		fetched, err := importer.Fetch()
		if err != nil {
			return MapError(fmt.Errorf("importer fetch failed: %w", err))
		}

		records := make([]*feedback.Record, len(fetched))
		for i := range fetched {
			records[i] = &fetched[i]
		}

		count, err := services.Intake.ImportRecords("plugin:"+args[0], records)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Imported %d records via importer %q.\n", count, args[0])
		return nil
	},
}

func init() {
	importGitHubCmd.Flags().StringVar(&importGitHubToken, "token", "", "GitHub API token (defaults to $GITHUB_TOKEN)")

	importCmd.AddCommand(importJSONCmd)
	importCmd.AddCommand(importGitHubCmd)
	importCmd.AddCommand(importPluginCmd)
	RootCmd.AddCommand(importCmd)
}
