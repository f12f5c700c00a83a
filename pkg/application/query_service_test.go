package application

import (
	"fmt"
	"strings"
	"testing"

	"github.com/felixgeelhaar/ricemill/pkg/domain/insights"
)

func newScoredWorkspace(t *testing.T) (*PrioritizationService, *QueryService) {
	t.Helper()
	repo, audit := newTestWorkspace(t)
	seedIntake(t, repo, 12)
	prio := NewPrioritizationService(repo, audit)
	if _, err := prio.Score(); err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	return prio, NewQueryService(repo, audit)
}

func TestQueryService_AskRoutesAndLogs(t *testing.T) {
	_, svc := newScoredWorkspace(t)

	tests := []struct {
		query string
		kind  insights.QueryKind
	}{
		{"What should we build first?", insights.QueryGeneral},
		{"What are our top priorities?", insights.QueryPriority},
		{"When will Feature 03 ship?", insights.QueryTimeline},
		{"What's the expected ROI?", insights.QueryROI},
		{"Do we have the team capacity?", insights.QueryCapacity},
		{"Any risky bets in the plan?", insights.QueryRisk},
	}

	for _, tt := range tests {
		result, err := svc.Ask(tt.query, "")
		if err != nil {
			t.Fatalf("Ask(%q) error: %v", tt.query, err)
		}
		if result.Kind != tt.kind {
			t.Errorf("Ask(%q) kind = %v, want %v", tt.query, result.Kind, tt.kind)
		}
		if result.Answer == "" {
			t.Errorf("Ask(%q) produced an empty answer", tt.query)
		}
	}

	history, err := svc.History()
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(history) != len(tests) {
		t.Fatalf("History() has %d entries, want %d", len(history), len(tests))
	}
	if history[0].Query != tests[0].query {
		t.Errorf("first logged query = %q, want %q", history[0].Query, tests[0].query)
	}
}

func TestQueryService_AskWithFilter(t *testing.T) {
	prio, svc := newScoredWorkspace(t)

	records, _ := prio.Ranking(0)
	cutoff := records[len(records)/2].Composite

	result, err := svc.Ask("top priorities", fmt.Sprintf("composite >= %f", cutoff))
	if err != nil {
		t.Fatalf("Ask() with filter error: %v", err)
	}
	// The bottom half must not appear in the answer's ranked list.
	bottom := records[len(records)-1]
	if bottom.Composite < cutoff && strings.Contains(result.Answer, bottom.Feature) {
		t.Errorf("filtered answer still mentions %q:\n%s", bottom.Feature, result.Answer)
	}
}

func TestQueryService_AskRejectsBadFilter(t *testing.T) {
	_, svc := newScoredWorkspace(t)

	if _, err := svc.Ask("top priorities", "composite >"); err == nil {
		t.Error("Ask() accepted an unparsable filter")
	}
	if _, err := svc.Ask("top priorities", "composite + 1.0"); err == nil {
		t.Error("Ask() accepted a non-boolean filter")
	}
}

func TestQueryService_Simulate(t *testing.T) {
	prio, svc := newScoredWorkspace(t)

	baseline, _ := prio.Ranking(0)
	last := baseline[len(baseline)-1].Feature

	outcome, err := svc.Simulate(insights.Scenario{Name: "boost the tail", Boost: []string{last}})
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}
	if outcome.Scenario != "boost the tail" {
		t.Errorf("outcome scenario = %q", outcome.Scenario)
	}
	if len(outcome.Records) != len(baseline) {
		t.Errorf("simulated %d records, want %d", len(outcome.Records), len(baseline))
	}

	// The persisted snapshot is untouched.
	after, _ := prio.Ranking(0)
	for i := range baseline {
		if after[i].Feature != baseline[i].Feature || after[i].Composite != baseline[i].Composite {
			t.Fatalf("snapshot changed at %d: %+v vs %+v", i, after[i], baseline[i])
		}
	}
}

func TestQueryService_SimulateWithoutScoresFails(t *testing.T) {
	repo, audit := newTestWorkspace(t)
	svc := NewQueryService(repo, audit)

	if _, err := svc.Simulate(insights.Scenario{}); err == nil {
		t.Error("Simulate() succeeded without scores")
	}
}
