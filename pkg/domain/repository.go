package domain

import (
	"github.com/felixgeelhaar/ricemill/pkg/domain/events"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ml"
	"github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
)

// WorkspaceRepository handles the persistence of ricemill artifacts in the
// .ricemill/ directory.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool

	SaveConfig(cfg *Config) error
	LoadConfig() (*Config, error)

	AppendFeedback(records ...*feedback.Record) error
	LoadFeedback() ([]*feedback.Record, error)
	AppendUsage(records ...*feedback.Usage) error
	LoadUsage() ([]*feedback.Usage, error)

	SaveBacklog(backlog map[string]string) error
	LoadBacklog() (map[string]string, error)

	SaveScores(records []*ranking.ScoreRecord) error
	LoadScores() ([]*ranking.ScoreRecord, error)
	SaveModel(model *ml.Model) error
	LoadModel() (*ml.Model, error)

	SaveWebhookConfig(cfg *events.WebhookConfig) error
	LoadWebhookConfig() (*events.WebhookConfig, error)

	SaveImporterConfigs(cfg *plugin.ImporterConfigs) error
	LoadImporterConfigs() (*plugin.ImporterConfigs, error)

	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
	AppendQuery(entry QueryLogEntry) error
	LoadQueries() ([]QueryLogEntry, error)
}
