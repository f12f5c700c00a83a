package scoring

import (
	"errors"
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    float64
		wantErr error
	}{
		{"basic", Input{Reach: 100, Impact: 2, Confidence: 0.8, Effort: 4}, 40, nil},
		{"unit components", Input{Reach: 1, Impact: 1, Confidence: 1, Effort: 1}, 1, nil},
		{"zero reach", Input{Reach: 0, Impact: 3, Confidence: 1, Effort: 2}, 0, nil},
		{"zero effort", Input{Reach: 10, Impact: 1, Confidence: 1, Effort: 0}, 0, ErrNonPositiveEffort},
		{"negative effort", Input{Reach: 10, Impact: 1, Confidence: 1, Effort: -2}, 0, ErrNonPositiveEffort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Score() error = %v, want %v", err, tt.wantErr)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The RICE score must be strictly monotone: increasing in reach, impact and
// confidence, decreasing in effort.
func TestScore_Monotonicity(t *testing.T) {
	base := Input{Reach: 50, Impact: 1, Confidence: 0.6, Effort: 5}
	baseScore := MustScore(base)

	moreReach := base
	moreReach.Reach = 60
	if MustScore(moreReach) <= baseScore {
		t.Error("score did not increase with reach")
	}

	moreImpact := base
	moreImpact.Impact = 2
	if MustScore(moreImpact) <= baseScore {
		t.Error("score did not increase with impact")
	}

	moreConfidence := base
	moreConfidence.Confidence = 0.8
	if MustScore(moreConfidence) <= baseScore {
		t.Error("score did not increase with confidence")
	}

	moreEffort := base
	moreEffort.Effort = 8
	if MustScore(moreEffort) >= baseScore {
		t.Error("score did not decrease with effort")
	}
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr bool
	}{
		{"valid", Input{Reach: 10, Impact: ImpactHigh, Confidence: 0.5, Effort: 3}, false},
		{"off-scale impact", Input{Reach: 10, Impact: 1.5, Confidence: 0.5, Effort: 3}, true},
		{"confidence above one", Input{Reach: 10, Impact: 1, Confidence: 1.2, Effort: 3}, true},
		{"negative reach", Input{Reach: -1, Impact: 1, Confidence: 0.5, Effort: 3}, true},
		{"zero effort", Input{Reach: 10, Impact: 1, Confidence: 0.5, Effort: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.in.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMustScore_PanicsOnZeroEffort(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustScore() did not panic on zero effort")
		}
	}()
	MustScore(Input{Reach: 1, Impact: 1, Confidence: 1, Effort: 0})
}
