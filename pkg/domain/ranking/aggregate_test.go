package ranking

import (
	"math"
	"testing"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
)

func testSummaries() []*feedback.Summary {
	return []*feedback.Summary{
		{
			Feature:          "dark mode",
			RequestCount:     20,
			UniqueUsers:      40,
			AvgBusinessValue: 9,
			AvgRevenueImpact: 60000,
			AvgEffort:        3,
			AvgConversion:    0.05,
			AvgRetention:     0.08,
			CriticalRequests: 1,
		},
		{
			Feature:          "reporting api",
			RequestCount:     4,
			UniqueUsers:      8,
			AvgBusinessValue: 5,
			AvgRevenueImpact: 10000,
			AvgEffort:        13,
			AvgConversion:    0.05,
			AvgRetention:     0.08,
		},
		{
			Feature:          "mobile offline sync",
			RequestCount:     10,
			UniqueUsers:      25,
			AvgBusinessValue: 7,
			AvgRevenueImpact: 30000,
			AvgEffort:        8,
			AvgConversion:    0.05,
			AvgRetention:     0.08,
			HighRequests:     2,
		},
	}
}

func TestAggregateRanksByComposite(t *testing.T) {
	records, err := Aggregate(testSummaries(), nil, DefaultWeights())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	seen := make(map[int]bool)
	for i, r := range records {
		if r.Rank != i+1 {
			t.Errorf("record %d Rank = %d, want %d", i, r.Rank, i+1)
		}
		if seen[r.Rank] {
			t.Errorf("duplicate rank %d", r.Rank)
		}
		seen[r.Rank] = true
		if i > 0 && records[i-1].Composite < r.Composite {
			t.Errorf("records not sorted by composite at %d", i)
		}
	}

	// Without a model the blend is a no-op.
	for _, r := range records {
		if r.ML != r.RICE {
			t.Errorf("%s: ML = %v, want RICE fallback %v", r.Feature, r.ML, r.RICE)
		}
		want := 0.7*r.RICE + 0.3*r.ML
		if math.Abs(r.Composite-want) > 1e-9 {
			t.Errorf("%s: Composite = %v, want %v", r.Feature, r.Composite, want)
		}
	}
}

func TestAggregateTieBreaksOnName(t *testing.T) {
	twin := func(name string) *feedback.Summary {
		return &feedback.Summary{
			Feature:          name,
			RequestCount:     5,
			UniqueUsers:      10,
			AvgBusinessValue: 5,
			AvgRevenueImpact: 10000,
			AvgEffort:        4,
			AvgConversion:    0.05,
			AvgRetention:     0.08,
		}
	}

	records, err := Aggregate([]*feedback.Summary{twin("beta"), twin("alpha")}, nil, DefaultWeights())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if records[0].Feature != "alpha" || records[1].Feature != "beta" {
		t.Errorf("tie order = [%s %s], want [alpha beta]", records[0].Feature, records[1].Feature)
	}
}

func TestAggregateRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name string
		w    Weights
	}{
		{"negative", Weights{RICE: -0.5, ML: 1.5}},
		{"both zero", Weights{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Aggregate(testSummaries(), nil, tt.w); err == nil {
				t.Error("Aggregate() expected error")
			}
		})
	}
}

func TestAggregateAssignsTeams(t *testing.T) {
	records, err := Aggregate(testSummaries(), nil, DefaultWeights())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	teams := make(map[string]string, len(records))
	for _, r := range records {
		teams[r.Feature] = r.Team
	}
	if teams["reporting api"] != "Backend Team" {
		t.Errorf("reporting api team = %q, want Backend Team", teams["reporting api"])
	}
	if teams["mobile offline sync"] != "Mobile Team" {
		t.Errorf("mobile offline sync team = %q, want Mobile Team", teams["mobile offline sync"])
	}
}

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name                        string
		effort, maxEffort, confidence float64
		want                        float64
	}{
		{"max effort low confidence", 10, 10, 0.4, 40 + 36},
		{"low effort full confidence", 1, 10, 1.0, 4},
		{"capped at 100", 10, 10, 0, 100},
		{"zero max effort", 5, 0, 0.5, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RiskScore(tt.effort, tt.maxEffort, tt.confidence)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RiskScore(%v, %v, %v) = %v, want %v", tt.effort, tt.maxEffort, tt.confidence, got, tt.want)
			}
		})
	}
}
