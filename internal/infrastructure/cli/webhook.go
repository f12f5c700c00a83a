package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/ricemill/internal/infrastructure/webhook"
	"github.com/felixgeelhaar/ricemill/pkg/domain/events"
	"github.com/spf13/cobra"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage outgoing webhook notifications",
	Long:  `Configured webhooks receive an HMAC-signed POST whenever the ranking changes or a model is trained. Failed deliveries are retried and then dead-lettered.`,
}

var (
	webhookAddSecret  string
	webhookAddFilters []string
)

var webhookAddCmd = &cobra.Command{
	Use:     "add <name> <url>",
	Short:   "Add an outgoing webhook endpoint",
	Example: `  ricemill webhook add slack https://hooks.example.com/T123 --secret s3cret --filter ranking.changed`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]

		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		repo := services.Workspace.Repo
		config, _ := repo.LoadWebhookConfig()
		if config == nil {
			config = &events.WebhookConfig{}
		}

		for _, ep := range config.Webhooks {
			if ep.Name == name {
				return fmt.Errorf("webhook %q already exists", name)
			}
		}

		config.Webhooks = append(config.Webhooks, events.WebhookEndpoint{
			Name:         name,
			URL:          url,
			Secret:       webhookAddSecret,
			EventFilters: webhookAddFilters,
			MaxRetries:   3,
			RetryDelay:   time.Second,
			Enabled:      true,
		})

		if err := repo.SaveWebhookConfig(config); err != nil {
			return err
		}

		fmt.Printf("Added webhook %q -> %s\n", name, url)
		return nil
	},
}

var webhookRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an outgoing webhook endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		repo := services.Workspace.Repo
		config, err := repo.LoadWebhookConfig()
		if err != nil {
			return fmt.Errorf("no webhook config found")
		}

		found := false
		var remaining []events.WebhookEndpoint
		for _, ep := range config.Webhooks {
			if ep.Name == name {
				found = true
				continue
			}
			remaining = append(remaining, ep)
		}

		if !found {
			return fmt.Errorf("webhook %q not found", name)
		}

		config.Webhooks = remaining
		if err := repo.SaveWebhookConfig(config); err != nil {
			return err
		}

		fmt.Printf("Removed webhook %q\n", name)
		return nil
	},
}

var webhookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured outgoing webhook endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		repo := services.Workspace.Repo
		config, err := repo.LoadWebhookConfig()
		if err != nil || len(config.Webhooks) == 0 {
			fmt.Println("No outgoing webhooks configured.")
			return nil
		}

		for _, ep := range config.Webhooks {
			status := "enabled"
			if !ep.Enabled {
				status = "disabled"
			}
			filters := "all events"
			if len(ep.EventFilters) > 0 {
				data, _ := json.Marshal(ep.EventFilters)
				filters = string(data)
			}
			fmt.Printf("  %s -> %s [%s] filters=%s\n", ep.Name, ep.URL, status, filters)
		}
		return nil
	},
}

var webhookTestCmd = &cobra.Command{
	Use:   "test <name>",
	Short: "Send a test event to a webhook endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		repo := services.Workspace.Repo
		config, err := repo.LoadWebhookConfig()
		if err != nil {
			return fmt.Errorf("no webhook config found")
		}

		var target *events.WebhookEndpoint
		for i, ep := range config.Webhooks {
			if ep.Name == name {
				target = &config.Webhooks[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("webhook %q not found", name)
		}

		// Filters would swallow the ping, so the test copy ignores them.
		ep := *target
		ep.EventFilters = nil
		notifier := webhook.NewNotifier([]events.WebhookEndpoint{ep}, repo)
		notifier.Notify("test.ping", map[string]interface{}{"actor": "ricemill-cli"})
		notifier.Wait()

		fmt.Printf("Test event sent to webhook %q\n", name)
		return nil
	},
}

func init() {
	webhookAddCmd.Flags().StringVar(&webhookAddSecret, "secret", "", "HMAC-SHA256 signing secret")
	webhookAddCmd.Flags().StringSliceVar(&webhookAddFilters, "filter", nil, "Only deliver matching event types (e.g. ranking.changed)")

	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookTestCmd)
	RootCmd.AddCommand(webhookCmd)
}
