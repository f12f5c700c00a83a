package insights

import (
	"testing"

	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
)

func simBaseline() []*ranking.ScoreRecord {
	return []*ranking.ScoreRecord{
		{Feature: "alpha", Rank: 1, Composite: 30, Effort: 10},
		{Feature: "beta", Rank: 2, Composite: 25, Effort: 8},
		{Feature: "gamma", Rank: 3, Composite: 20, Effort: 6},
	}
}

func TestSimulateBoost(t *testing.T) {
	out := Simulate(simBaseline(), Scenario{Name: "boost gamma", Boost: []string{"gamma"}})

	// 20 * 1.5 = 30 ties alpha; name tiebreak puts alpha first.
	if out.Records[0].Feature != "alpha" || out.Records[1].Feature != "gamma" {
		t.Errorf("order = [%s %s], want [alpha gamma]", out.Records[0].Feature, out.Records[1].Feature)
	}
	if out.Records[1].Rank != 2 {
		t.Errorf("gamma rank = %d, want 2", out.Records[1].Rank)
	}
}

func TestSimulateExclude(t *testing.T) {
	out := Simulate(simBaseline(), Scenario{Exclude: []string{"alpha"}})
	if len(out.Records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(out.Records))
	}
	if out.Records[0].Feature != "beta" || out.Records[0].Rank != 1 {
		t.Errorf("top = %s rank %d, want beta rank 1", out.Records[0].Feature, out.Records[0].Rank)
	}
	if out.BaselineChanges != 1 {
		t.Errorf("BaselineChanges = %d, want 1", out.BaselineChanges)
	}
}

func TestSimulateEffortReduction(t *testing.T) {
	out := Simulate(simBaseline(), Scenario{EffortReduction: 0.5})
	if out.TotalEffort != 12 {
		t.Errorf("TotalEffort = %v, want 12", out.TotalEffort)
	}
}

func TestSimulateDoesNotMutateBaseline(t *testing.T) {
	baseline := simBaseline()
	Simulate(baseline, Scenario{Boost: []string{"alpha"}, EffortReduction: 0.5})
	if baseline[0].Composite != 30 || baseline[0].Effort != 10 {
		t.Errorf("baseline mutated: composite=%v effort=%v", baseline[0].Composite, baseline[0].Effort)
	}
}

func TestSimulateNoChanges(t *testing.T) {
	out := Simulate(simBaseline(), Scenario{})
	if out.BaselineChanges != 0 {
		t.Errorf("BaselineChanges = %d, want 0", out.BaselineChanges)
	}
	if out.Scenario != "custom scenario" {
		t.Errorf("Scenario = %q, want default name", out.Scenario)
	}
	if len(out.Top) != 3 {
		t.Errorf("len(Top) = %d, want 3", len(out.Top))
	}
}
