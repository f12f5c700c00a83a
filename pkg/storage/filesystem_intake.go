package storage

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
)

// AppendFeedback validates and appends records to feedback.jsonl.
func (r *FilesystemRepository) AppendFeedback(records ...*feedback.Record) error {
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("invalid feedback record for %q: %w", rec.Feature, err)
		}
	}
	path, err := r.ResolvePath(FeedbackFile)
	if err != nil {
		return err
	}
	return appendJSONLines(path, records...)
}

// LoadFeedback reads the full feedback log. Reads retry on transient
// failures since watch mode can race a writer.
func (r *FilesystemRepository) LoadFeedback() ([]*feedback.Record, error) {
	retryer := retry.New[[]*feedback.Record](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]*feedback.Record, error) {
		path, err := r.ResolvePath(FeedbackFile)
		if err != nil {
			return nil, err
		}
		return readJSONLines[*feedback.Record](path)
	})
}

// AppendUsage validates and appends records to usage.jsonl.
func (r *FilesystemRepository) AppendUsage(records ...*feedback.Usage) error {
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("invalid usage record for %q: %w", rec.Feature, err)
		}
	}
	path, err := r.ResolvePath(UsageFile)
	if err != nil {
		return err
	}
	return appendJSONLines(path, records...)
}

// LoadUsage reads the full usage log.
func (r *FilesystemRepository) LoadUsage() ([]*feedback.Usage, error) {
	retryer := retry.New[[]*feedback.Usage](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]*feedback.Usage, error) {
		path, err := r.ResolvePath(UsageFile)
		if err != nil {
			return nil, err
		}
		return readJSONLines[*feedback.Usage](path)
	})
}
