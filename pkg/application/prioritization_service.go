package application

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain"
	"github.com/felixgeelhaar/ricemill/pkg/domain/events"
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ml"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
	"github.com/felixgeelhaar/ricemill/pkg/domain/roi"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoIntake is returned when the workspace has no feedback or usage
	// data to score.
	ErrNoIntake = errors.New("no intake data to score; add feedback first")
	// ErrNoScores is returned when a planning view is requested before the
	// pipeline has run.
	ErrNoScores = errors.New("no scores computed yet; run score first")
)

// Notifier publishes a domain event to the configured webhook endpoints.
// Delivery failures are the notifier's problem; the pipeline never fails
// because an endpoint is down.
type Notifier interface {
	Notify(eventType string, payload map[string]interface{})
}

// PrioritizationService runs the scoring pipeline and serves the planning
// views derived from the persisted scores snapshot.
type PrioritizationService struct {
	repo     domain.WorkspaceRepository
	audit    domain.AuditLogger
	notifier Notifier
	now      func() time.Time
}

func NewPrioritizationService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *PrioritizationService {
	return &PrioritizationService{repo: repo, audit: audit, now: time.Now}
}

// SetNotifier attaches an outbound webhook notifier. Without one the pipeline
// runs silently.
func (s *PrioritizationService) SetNotifier(n Notifier) { s.notifier = n }

// ScoreResult summarizes one pipeline run.
type ScoreResult struct {
	Records    []*ranking.ScoreRecord `json:"records"`
	ModelUsed  bool                   `json:"model_used"`
	TrainStats *ml.TrainStats         `json:"train_stats,omitempty"`
}

// Score recomputes the full ranking from the intake logs: summarize, derive
// RICE, train the re-ranker when enough features exist, blend, assign
// quarters, and persist the snapshot. Below the training threshold the
// pipeline degrades to pure RICE ordering.
func (s *PrioritizationService) Score() (*ScoreResult, error) {
	records, err := s.repo.LoadFeedback()
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	usage, err := s.repo.LoadUsage()
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}
	summaries := feedback.Summarize(records, usage)
	if len(summaries) == 0 {
		return nil, ErrNoIntake
	}

	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dataset, err := ml.Build(summaries)
	if err != nil {
		return nil, err
	}

	var model *ml.Model
	model, err = ml.Train(dataset, ml.DefaultConfig())
	if err != nil {
		if !errors.Is(err, ml.ErrTooFewSamples) {
			return nil, err
		}
		model = nil
	}

	scored, err := ranking.Aggregate(summaries, model, cfg.Weights)
	if err != nil {
		return nil, err
	}
	ranking.AssignQuarters(scored, s.now())

	if err := s.repo.SaveScores(scored); err != nil {
		return nil, fmt.Errorf("failed to save scores: %w", err)
	}
	if model != nil {
		if err := s.repo.SaveModel(model); err != nil {
			return nil, fmt.Errorf("failed to save model: %w", err)
		}
		_ = s.audit.Log(domain.ActionModelTrained, "pipeline", map[string]interface{}{
			"train_r2": model.Stats.TrainR2,
			"test_r2":  model.Stats.TestR2,
		})
	}
	_ = s.audit.Log(domain.ActionScoresComputed, "pipeline", map[string]interface{}{
		"features":   len(scored),
		"model_used": model != nil,
	})

	if s.notifier != nil {
		top := make([]string, 0, 5)
		for i, r := range scored {
			if i >= 5 {
				break
			}
			top = append(top, r.Feature)
		}
		s.notifier.Notify(events.EventRankingChanged, map[string]interface{}{
			"features":   len(scored),
			"top":        top,
			"model_used": model != nil,
		})
		if model != nil {
			s.notifier.Notify(events.EventModelTrained, map[string]interface{}{
				"test_r2": model.Stats.TestR2,
			})
		}
	}

	result := &ScoreResult{Records: scored, ModelUsed: model != nil}
	if model != nil {
		result.TrainStats = &model.Stats
	}
	return result, nil
}

// Ranking returns the persisted snapshot, optionally narrowed to the top n.
func (s *PrioritizationService) Ranking(n int) ([]*ranking.ScoreRecord, error) {
	records, err := s.loadScores()
	if err != nil {
		return nil, err
	}
	if n > 0 && n < len(records) {
		records = records[:n]
	}
	return records, nil
}

// Quadrants groups the snapshot by effort/impact quadrant.
func (s *PrioritizationService) Quadrants() (map[string][]*ranking.ScoreRecord, error) {
	records, err := s.loadScores()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]*ranking.ScoreRecord)
	for _, r := range records {
		out[string(r.Quadrant)] = append(out[string(r.Quadrant)], r)
	}
	return out, nil
}

// Timeline groups the snapshot by assigned quarter, in rank order within each.
func (s *PrioritizationService) Timeline() (map[string][]*ranking.ScoreRecord, error) {
	records, err := s.loadScores()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]*ranking.ScoreRecord)
	for _, r := range records {
		out[r.Quarter] = append(out[r.Quarter], r)
	}
	return out, nil
}

// Capacity reports per-quarter load against the configured velocity.
func (s *PrioritizationService) Capacity() ([]ranking.QuarterLoad, error) {
	records, err := s.loadScores()
	if err != nil {
		return nil, err
	}
	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return nil, err
	}
	return ranking.AnalyzeCapacity(records, cfg.QuarterCapacity), nil
}

// Risk returns the snapshot sorted by risk score, highest first.
func (s *PrioritizationService) Risk() ([]*ranking.ScoreRecord, error) {
	records, err := s.loadScores()
	if err != nil {
		return nil, err
	}
	sorted := make([]*ranking.ScoreRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Risk != sorted[j].Risk {
			return sorted[i].Risk > sorted[j].Risk
		}
		return sorted[i].Feature < sorted[j].Feature
	})
	return sorted, nil
}

// ROI projects cost, revenue and payback for the head of the ranking.
func (s *PrioritizationService) ROI() ([]roi.Projection, error) {
	records, err := s.loadScores()
	if err != nil {
		return nil, err
	}
	feedbackRecords, err := s.repo.LoadFeedback()
	if err != nil {
		return nil, err
	}
	usage, err := s.repo.LoadUsage()
	if err != nil {
		return nil, err
	}
	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return nil, err
	}
	summaries := feedback.Summarize(feedbackRecords, usage)
	return roi.Project(records, summaries, decimal.NewFromFloat(cfg.CostPerPoint)), nil
}

func (s *PrioritizationService) loadScores() ([]*ranking.ScoreRecord, error) {
	records, err := s.repo.LoadScores()
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoScores
	}
	return records, nil
}
