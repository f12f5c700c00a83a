package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/ricemill/pkg/domain/ml"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
)

// SaveScores writes the latest ScoreRecord snapshot to scores.json.
func (r *FilesystemRepository) SaveScores(records []*ranking.ScoreRecord) error {
	path, err := r.ResolvePath(ScoresFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadScores reads the last computed snapshot. A missing file yields nil,
// signalling that scoring has not run yet.
func (r *FilesystemRepository) LoadScores() ([]*ranking.ScoreRecord, error) {
	path, err := r.ResolvePath(ScoresFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read scores file: %w", err)
	}

	var records []*ranking.ScoreRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}

	return records, nil
}

// SaveModel writes the trained re-ranker artifact to model.json.
func (r *FilesystemRepository) SaveModel(model *ml.Model) error {
	path, err := r.ResolvePath(ModelFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadModel reads the trained re-ranker artifact. A missing file yields nil,
// meaning predictions fall back to the RICE score.
func (r *FilesystemRepository) LoadModel() (*ml.Model, error) {
	path, err := r.ResolvePath(ModelFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var model ml.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}

	return &model, nil
}

// SaveBacklog writes feature lifecycle states to backlog.json.
func (r *FilesystemRepository) SaveBacklog(backlog map[string]string) error {
	path, err := r.ResolvePath(BacklogFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(backlog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backlog: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadBacklog reads feature lifecycle states; a missing file yields an empty
// backlog.
func (r *FilesystemRepository) LoadBacklog() (map[string]string, error) {
	path, err := r.ResolvePath(BacklogFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read backlog file: %w", err)
	}

	backlog := make(map[string]string)
	if err := json.Unmarshal(data, &backlog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backlog: %w", err)
	}

	return backlog, nil
}
