package scoring

import (
	"math"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
)

// Derive builds a full RICE input from the aggregated signals of one feature.
// Effort is clamped to at least one story point; the scorer itself still
// rejects non-positive effort for hand-built inputs.
func Derive(s *feedback.Summary) Input {
	return Input{
		Reach:      DeriveReach(s),
		Impact:     DeriveImpact(s),
		Confidence: DeriveConfidence(s),
		Effort:     math.Max(s.AvgEffort, 1),
	}
}

// DeriveReach estimates how many users a feature touches. Each request is
// weighted double as a proxy for unexpressed demand, and critical/high
// requests multiply the base.
func DeriveReach(s *feedback.Summary) float64 {
	userReach := float64(s.UniqueUsers)
	requestReach := float64(s.RequestCount) * 2
	multiplier := 1 + float64(s.CriticalRequests)*0.5 + float64(s.HighRequests)*0.3
	return math.Max(userReach, requestReach) * multiplier
}

// DeriveImpact blends business value, revenue, conversion and retention
// signals into [0,1] and buckets the result onto the RICE ordinal scale.
func DeriveImpact(s *feedback.Summary) float64 {
	businessValue := math.Min(s.AvgBusinessValue/10, 1)
	revenueImpact := math.Min(s.AvgRevenueImpact/50000, 1)
	conversionImpact := s.AvgConversion * 20
	retentionImpact := s.AvgRetention * 15

	impact := businessValue*0.3 + revenueImpact*0.3 + conversionImpact*0.2 + retentionImpact*0.2

	switch {
	case impact <= 0.1:
		return ImpactMinimal
	case impact <= 0.3:
		return ImpactLow
	case impact <= 0.6:
		return ImpactMedium
	case impact <= 0.8:
		return ImpactHigh
	default:
		return ImpactMassive
	}
}

// DeriveConfidence estimates data quality. More requests, more distinct
// users, higher business value and urgent requests all raise confidence from
// a 0.4 baseline, capped at 1.0.
func DeriveConfidence(s *feedback.Summary) float64 {
	confidence := 0.4

	switch {
	case s.RequestCount > 15:
		confidence += 0.2
	case s.RequestCount > 5:
		confidence += 0.1
	}

	switch {
	case s.UniqueUsers > 30:
		confidence += 0.2
	case s.UniqueUsers > 10:
		confidence += 0.1
	}

	switch {
	case s.AvgBusinessValue > 8:
		confidence += 0.15
	case s.AvgBusinessValue > 6:
		confidence += 0.1
	}

	if s.CriticalRequests > 0 || s.HighRequests > 2 {
		confidence += 0.05
	}

	return math.Min(confidence, 1.0)
}
