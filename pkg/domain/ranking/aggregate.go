// Package ranking blends deterministic RICE scores with the learned
// re-ranker into the final roadmap ordering, and derives the planning views
// built on top of it: quadrants, quarter assignment, capacity, risk and team
// suggestions.
package ranking

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ml"
	"github.com/felixgeelhaar/ricemill/pkg/domain/scoring"
)

// Weights controls the composite blend. They should sum to one.
type Weights struct {
	RICE float64 `json:"rice" yaml:"rice"`
	ML   float64 `json:"ml" yaml:"ml"`
}

// DefaultWeights favors the deterministic score over the model.
func DefaultWeights() Weights { return Weights{RICE: 0.7, ML: 0.3} }

// Validate rejects weights that cannot form a convex blend.
func (w Weights) Validate() error {
	if w.RICE < 0 || w.ML < 0 {
		return fmt.Errorf("ranking: blend weights must be non-negative, got rice=%v ml=%v", w.RICE, w.ML)
	}
	if w.RICE+w.ML == 0 {
		return fmt.Errorf("ranking: blend weights must not both be zero")
	}
	return nil
}

// ScoreRecord is one feature's full scoring breakdown. Records are recomputed
// from scratch on every input change and persisted as the scores snapshot.
type ScoreRecord struct {
	Feature    string           `json:"feature"`
	Reach      float64          `json:"reach"`
	Impact     float64          `json:"impact"`
	Confidence float64          `json:"confidence"`
	Effort     float64          `json:"effort"`
	RICE       float64          `json:"rice_score"`
	ML         float64          `json:"ml_score"`
	Composite  float64          `json:"composite_score"`
	Rank       int              `json:"rank"`
	Quadrant   scoring.Quadrant `json:"quadrant"`
	Quarter    string           `json:"quarter"`
	Risk       float64          `json:"risk_score"`
	Team       string           `json:"team"`
}

// Aggregate scores every summary, blends in model predictions when a model is
// available, and returns records ranked by composite score. A nil model means
// the RICE fallback: ml score equals rice score and the blend is a no-op.
// Ties in the composite break on feature name so the ordering is total.
func Aggregate(summaries []*feedback.Summary, model *ml.Model, w Weights) ([]*ScoreRecord, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	records := make([]*ScoreRecord, 0, len(summaries))
	for _, s := range summaries {
		in := scoring.Derive(s)
		rice, err := scoring.Score(in)
		if err != nil {
			return nil, fmt.Errorf("ranking: score %s: %w", s.Feature, err)
		}

		mlScore := rice
		if model != nil {
			mlScore, err = model.Predict(ml.Row(s, in))
			if err != nil {
				return nil, fmt.Errorf("ranking: predict %s: %w", s.Feature, err)
			}
		}

		records = append(records, &ScoreRecord{
			Feature:    s.Feature,
			Reach:      in.Reach,
			Impact:     in.Impact,
			Confidence: in.Confidence,
			Effort:     in.Effort,
			RICE:       rice,
			ML:         mlScore,
			Composite:  w.RICE*rice + w.ML*mlScore,
			Team:       AssignTeam(s.Feature),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Composite != records[j].Composite {
			return records[i].Composite > records[j].Composite
		}
		return records[i].Feature < records[j].Feature
	})
	for i, r := range records {
		r.Rank = i + 1
	}

	classifyQuadrants(records)
	applyRisk(records)
	return records, nil
}

func classifyQuadrants(records []*ScoreRecord) {
	efforts := make([]float64, len(records))
	impacts := make([]float64, len(records))
	for i, r := range records {
		efforts[i] = r.Effort
		impacts[i] = r.Impact
	}
	effortMedian := scoring.Median(efforts)
	impactMedian := scoring.Median(impacts)

	for _, r := range records {
		r.Quadrant = scoring.Classify(r.Effort, r.Impact, effortMedian, impactMedian)
	}
}

func applyRisk(records []*ScoreRecord) {
	var maxEffort float64
	for _, r := range records {
		if r.Effort > maxEffort {
			maxEffort = r.Effort
		}
	}
	for _, r := range records {
		r.Risk = RiskScore(r.Effort, maxEffort, r.Confidence)
	}
}
