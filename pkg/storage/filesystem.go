// Package storage persists the ricemill workspace to a .ricemill directory:
// yaml for configuration, json for snapshots, jsonl for append-only logs.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/felixgeelhaar/ricemill/pkg/domain/events"
	"github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
	"gopkg.in/yaml.v3"
)

const RicemillDir = ".ricemill"
const ConfigFile = "config.yaml"
const FeedbackFile = "feedback.jsonl"
const UsageFile = "usage.jsonl"
const BacklogFile = "backlog.json"
const ScoresFile = "scores.json"
const ModelFile = "model.json"
const WebhookFile = "webhooks.yaml"
const ImportersFile = "importers.yaml"
const DeadLetterFile = "deadletters.jsonl"
const EventsFile = "events.jsonl"
const QueriesFile = "queries.jsonl"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .ricemill directory and
// prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	// Base directory is strictly root/.ricemill
	baseDir := filepath.Join(r.root, RicemillDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Check for traversal and ensure it's a direct child (no nested subdirs)
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, RicemillDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .ricemill directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, RicemillDir))
	return err == nil
}

func (r *FilesystemRepository) SaveConfig(cfg *domain.Config) error {
	path, err := r.ResolvePath(ConfigFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadConfig reads config.yaml, falling back to defaults when the file does
// not exist yet. Reads retry on transient failures.
func (r *FilesystemRepository) LoadConfig() (*domain.Config, error) {
	retryer := retry.New[*domain.Config](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*domain.Config, error) {
		path, err := r.ResolvePath(ConfigFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return domain.DefaultConfig(), nil
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		var cfg domain.Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}

		return &cfg, nil
	})
}

// SaveWebhookConfig saves webhook endpoints to .ricemill/webhooks.yaml.
func (r *FilesystemRepository) SaveWebhookConfig(config *events.WebhookConfig) error {
	path, err := r.ResolvePath(WebhookFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadWebhookConfig loads webhook endpoints; a missing file yields an empty
// configuration.
func (r *FilesystemRepository) LoadWebhookConfig() (*events.WebhookConfig, error) {
	path, err := r.ResolvePath(WebhookFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &events.WebhookConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read webhook config: %w", err)
	}

	var config events.WebhookConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook config: %w", err)
	}

	return &config, nil
}

// SaveImporterConfigs saves importer plugin settings to importers.yaml.
func (r *FilesystemRepository) SaveImporterConfigs(cfg *plugin.ImporterConfigs) error {
	path, err := r.ResolvePath(ImportersFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal importer configs: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadImporterConfigs loads importer plugin settings; a missing file yields
// an empty configuration.
func (r *FilesystemRepository) LoadImporterConfigs() (*plugin.ImporterConfigs, error) {
	path, err := r.ResolvePath(ImportersFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return plugin.NewImporterConfigs(), nil
		}
		return nil, fmt.Errorf("failed to read importer configs: %w", err)
	}

	var cfg plugin.ImporterConfigs
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal importer configs: %w", err)
	}

	return &cfg, nil
}
