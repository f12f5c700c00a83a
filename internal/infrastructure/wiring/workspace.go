// Package wiring assembles the storage, services and outbound adapters a
// ricemill process needs for a given workspace root.
package wiring

import (
	"github.com/felixgeelhaar/ricemill/internal/infrastructure/webhook"
	"github.com/felixgeelhaar/ricemill/pkg/application"
	"github.com/felixgeelhaar/ricemill/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo     *storage.FilesystemRepository
	Audit    *application.AuditService
	Notifier *webhook.Notifier
}

func NewWorkspace(root string) *Workspace {
	repo := storage.NewFilesystemRepository(root)

	// Load webhook config and create notifier if configured
	var notifier *webhook.Notifier
	if config, err := repo.LoadWebhookConfig(); err == nil && len(config.Webhooks) > 0 {
		notifier = webhook.NewNotifier(config.Webhooks, repo)
	}

	return &Workspace{
		Repo:     repo,
		Audit:    application.NewAuditService(repo),
		Notifier: notifier,
	}
}
