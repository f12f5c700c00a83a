package scoring

import (
	"math"
	"testing"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
)

func TestDeriveReach(t *testing.T) {
	tests := []struct {
		name string
		s    feedback.Summary
		want float64
	}{
		{
			"users dominate requests",
			feedback.Summary{UniqueUsers: 40, RequestCount: 10},
			40,
		},
		{
			"requests dominate users",
			feedback.Summary{UniqueUsers: 5, RequestCount: 10},
			20,
		},
		{
			"priority multiplier",
			feedback.Summary{UniqueUsers: 10, RequestCount: 2, CriticalRequests: 2, HighRequests: 1},
			10 * (1 + 2*0.5 + 1*0.3),
		},
		{"no signal", feedback.Summary{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveReach(&tt.s); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DeriveReach() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeriveImpact_Buckets(t *testing.T) {
	tests := []struct {
		name string
		s    feedback.Summary
		want float64
	}{
		{"no signal", feedback.Summary{}, ImpactMinimal},
		{
			"low",
			feedback.Summary{AvgBusinessValue: 5, AvgRevenueImpact: 10000}, // 0.15 + 0.06
			ImpactLow,
		},
		{
			"medium",
			feedback.Summary{AvgBusinessValue: 8, AvgRevenueImpact: 30000, AvgConversion: 0.02}, // 0.24 + 0.18 + 0.08
			ImpactMedium,
		},
		{
			"high",
			feedback.Summary{AvgBusinessValue: 10, AvgRevenueImpact: 50000, AvgConversion: 0.02, AvgRetention: 0.02}, // 0.3 + 0.3 + 0.08 + 0.06
			ImpactHigh,
		},
		{
			"massive",
			feedback.Summary{AvgBusinessValue: 10, AvgRevenueImpact: 75000, AvgConversion: 0.05, AvgRetention: 0.05}, // 0.3 + 0.3 + 0.2 + 0.15
			ImpactMassive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveImpact(&tt.s); got != tt.want {
				t.Errorf("DeriveImpact() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeriveConfidence(t *testing.T) {
	tests := []struct {
		name string
		s    feedback.Summary
		want float64
	}{
		{"baseline", feedback.Summary{}, 0.4},
		{"some requests", feedback.Summary{RequestCount: 6}, 0.5},
		{"many requests", feedback.Summary{RequestCount: 16}, 0.6},
		{"some users", feedback.Summary{UniqueUsers: 11}, 0.5},
		{"many users", feedback.Summary{UniqueUsers: 31}, 0.6},
		{"good value", feedback.Summary{AvgBusinessValue: 7}, 0.5},
		{"great value", feedback.Summary{AvgBusinessValue: 9}, 0.55},
		{"urgent", feedback.Summary{CriticalRequests: 1}, 0.45},
		{"several high", feedback.Summary{HighRequests: 3}, 0.45},
		{
			"capped at one",
			feedback.Summary{RequestCount: 20, UniqueUsers: 40, AvgBusinessValue: 9, CriticalRequests: 5},
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveConfidence(&tt.s); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DeriveConfidence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerive_ClampsEffort(t *testing.T) {
	in := Derive(&feedback.Summary{AvgEffort: 0})
	if in.Effort != 1 {
		t.Errorf("Derive() effort = %v, want clamp to 1", in.Effort)
	}
	if _, err := Score(in); err != nil {
		t.Errorf("Score(Derive()) error: %v", err)
	}
}
