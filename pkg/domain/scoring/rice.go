// Package scoring implements the deterministic RICE scorer: reach, impact,
// confidence, effort in; a single real-valued priority score out.
package scoring

import (
	"errors"
	"fmt"
)

// ErrNonPositiveEffort is returned when a score is requested with effort <= 0.
// The RICE formula divides by effort, so zero and negative estimates are
// rejected rather than clamped at this level.
var ErrNonPositiveEffort = errors.New("scoring: effort must be positive")

// Impact uses the standard RICE ordinal scale.
const (
	ImpactMinimal float64 = 0.25
	ImpactLow     float64 = 0.5
	ImpactMedium  float64 = 1
	ImpactHigh    float64 = 2
	ImpactMassive float64 = 3
)

// Input is a full set of RICE components for one feature.
type Input struct {
	Reach      float64 `json:"reach"`
	Impact     float64 `json:"impact"`
	Confidence float64 `json:"confidence"`
	Effort     float64 `json:"effort"`
}

// Validate checks the input ranges. Reach and effort are open-ended; impact
// must be on the ordinal scale and confidence inside [0, 1].
func (in Input) Validate() error {
	if in.Effort <= 0 {
		return ErrNonPositiveEffort
	}
	if in.Reach < 0 {
		return fmt.Errorf("scoring: reach cannot be negative, got %v", in.Reach)
	}
	if in.Confidence < 0 || in.Confidence > 1 {
		return fmt.Errorf("scoring: confidence must be in [0,1], got %v", in.Confidence)
	}
	switch in.Impact {
	case ImpactMinimal, ImpactLow, ImpactMedium, ImpactHigh, ImpactMassive:
	default:
		return fmt.Errorf("scoring: impact %v is not on the RICE scale", in.Impact)
	}
	return nil
}

// Score computes reach * impact * confidence / effort. It is deterministic
// and has no side effects. Effort <= 0 returns ErrNonPositiveEffort.
func Score(in Input) (float64, error) {
	if in.Effort <= 0 {
		return 0, ErrNonPositiveEffort
	}
	return in.Reach * in.Impact * in.Confidence / in.Effort, nil
}

// MustScore is Score for inputs already validated by the caller. It panics on
// non-positive effort.
func MustScore(in Input) float64 {
	score, err := Score(in)
	if err != nil {
		panic(err)
	}
	return score
}
