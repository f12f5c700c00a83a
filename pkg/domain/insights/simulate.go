package insights

import (
	"sort"
	"strings"

	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
)

// Scenario describes a what-if modification of the current ranking.
type Scenario struct {
	Name            string   `json:"name"`
	Boost           []string `json:"boost,omitempty"`
	EffortReduction float64  `json:"effort_reduction,omitempty"`
	Exclude         []string `json:"exclude,omitempty"`
}

// Outcome is a simulated ranking and its deltas against the baseline.
type Outcome struct {
	Scenario        string                 `json:"scenario"`
	Records         []*ranking.ScoreRecord `json:"records"`
	Top             []string               `json:"top_features"`
	TotalEffort     float64                `json:"total_effort"`
	AvgComposite    float64                `json:"avg_composite"`
	BaselineChanges int                    `json:"baseline_changes"`
}

// Simulate applies a scenario to a copy of the baseline, re-ranks, and counts
// how many features dropped out of the baseline top 10. Boosted features get
// a 1.5x composite multiplier; effort reduction scales every effort by the
// given fraction; excluded features are removed entirely. Name matching is a
// case-insensitive substring match.
func Simulate(baseline []*ranking.ScoreRecord, s Scenario) Outcome {
	matches := func(feature string, patterns []string) bool {
		name := strings.ToLower(feature)
		for _, p := range patterns {
			if p != "" && strings.Contains(name, strings.ToLower(p)) {
				return true
			}
		}
		return false
	}

	var modified []*ranking.ScoreRecord
	for _, r := range baseline {
		if matches(r.Feature, s.Exclude) {
			continue
		}
		clone := *r
		if matches(clone.Feature, s.Boost) {
			clone.Composite *= 1.5
		}
		if s.EffortReduction > 0 && s.EffortReduction < 1 {
			clone.Effort *= 1 - s.EffortReduction
		}
		modified = append(modified, &clone)
	}

	sort.Slice(modified, func(i, j int) bool {
		if modified[i].Composite != modified[j].Composite {
			return modified[i].Composite > modified[j].Composite
		}
		return modified[i].Feature < modified[j].Feature
	})

	out := Outcome{Scenario: s.Name, Records: modified}
	if out.Scenario == "" {
		out.Scenario = "custom scenario"
	}

	for i, r := range modified {
		r.Rank = i + 1
		out.TotalEffort += r.Effort
		out.AvgComposite += r.Composite
		if i < 5 {
			out.Top = append(out.Top, r.Feature)
		}
	}
	if len(modified) > 0 {
		out.AvgComposite /= float64(len(modified))
	}

	out.BaselineChanges = topDrops(baseline, modified, 10)
	return out
}

// topDrops counts baseline top-n features no longer in the simulated top n.
func topDrops(baseline, modified []*ranking.ScoreRecord, n int) int {
	head := func(records []*ranking.ScoreRecord) map[string]struct{} {
		out := make(map[string]struct{}, n)
		for i, r := range records {
			if i >= n {
				break
			}
			out[r.Feature] = struct{}{}
		}
		return out
	}

	after := head(modified)
	drops := 0
	for feature := range head(baseline) {
		if _, ok := after[feature]; !ok {
			drops++
		}
	}
	return drops
}
