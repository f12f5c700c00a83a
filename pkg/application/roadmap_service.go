package application

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
)

// RoadmapService tracks each feature's position in the delivery funnel. The
// backlog file maps feature names to lifecycle states; features never touched
// by a transition are implicitly in the backlog state.
type RoadmapService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewRoadmapService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *RoadmapService {
	return &RoadmapService{repo: repo, audit: audit}
}

// State returns the lifecycle state of one feature.
func (s *RoadmapService) State(feature string) (string, error) {
	backlog, err := s.repo.LoadBacklog()
	if err != nil {
		return "", fmt.Errorf("failed to load backlog: %w", err)
	}
	state, ok := backlog[feature]
	if !ok {
		return feedback.StateBacklog, nil
	}
	return state, nil
}

// FeatureState pairs a feature with its lifecycle state for listings.
type FeatureState struct {
	Feature string `json:"feature"`
	State   string `json:"state"`
}

// List returns every tracked feature and its state, sorted by name.
func (s *RoadmapService) List() ([]FeatureState, error) {
	backlog, err := s.repo.LoadBacklog()
	if err != nil {
		return nil, fmt.Errorf("failed to load backlog: %w", err)
	}
	out := make([]FeatureState, 0, len(backlog))
	for feature, state := range backlog {
		out = append(out, FeatureState{Feature: feature, State: state})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Feature < out[j].Feature })
	return out, nil
}

// Transition applies a lifecycle event to a feature and persists the new
// state. Illegal transitions are rejected by the state machine.
func (s *RoadmapService) Transition(feature, event string) (string, error) {
	backlog, err := s.repo.LoadBacklog()
	if err != nil {
		return "", fmt.Errorf("failed to load backlog: %w", err)
	}

	current, ok := backlog[feature]
	if !ok {
		current = feedback.StateBacklog
	}
	if !feedback.ValidLifecycleState(current) {
		return "", fmt.Errorf("backlog entry for %q has unknown state %q", feature, current)
	}

	lc, err := feedback.NewLifecycle(current, feature)
	if err != nil {
		return "", err
	}
	if err := lc.Transition(event); err != nil {
		return "", err
	}

	next := lc.Current()
	backlog[feature] = next
	if err := s.repo.SaveBacklog(backlog); err != nil {
		return "", fmt.Errorf("failed to save backlog: %w", err)
	}

	_ = s.audit.Log(domain.ActionLifecycleMoved, "cli", map[string]interface{}{
		"feature": feature,
		"event":   event,
		"from":    current,
		"to":      next,
	})
	return next, nil
}
